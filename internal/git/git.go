// Package git tags releases in the repository that holds the changelog.
// It uses the go-git library so no git installation is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// Fallback tagger identity when neither repository nor global git config
// provides user.name and user.email.
const (
	DefaultTaggerName  = "historian"
	DefaultTaggerEmail = "historian@localhost"
)

var logger = zap.NewNop()

// SetLogger configures the logger for git operations.
// Pass nil to disable logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("git")
}

// TagExistsError is returned when the release tag is already present.
type TagExistsError struct {
	Tag string
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("tag '%s' already exists", e.Tag)
}

// IsTagExistsError returns true if err is or wraps a TagExistsError.
func IsTagExistsError(err error) bool {
	var te *TagExistsError
	return errors.As(err, &te)
}

// Tag describes a created release tag.
type Tag struct {
	Name   string
	Commit string
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logger.Debug("opening repository", zap.String("path", path))

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// IsGitRepository checks if path is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// RepositoryRoot returns the absolute path to the repository root containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// TagRelease creates an annotated tag named tag at HEAD with the given
// message. It fails with a TagExistsError if the tag is already present.
func TagRelease(path, tag, message string) (*Tag, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	if err := checkTagExists(repo, tag); err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	ref, err := repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Tagger:  tagger(repo),
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tag '%s': %w", tag, err)
	}

	logger.Debug("created release tag",
		zap.String("tag", tag),
		zap.String("commit", head.Hash().String()),
		zap.String("ref", ref.Name().String()))

	return &Tag{Name: tag, Commit: head.Hash().String()}, nil
}

// HasTag reports whether tag exists in the repository containing path.
func HasTag(path, tag string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}
	err = checkTagExists(repo, tag)
	if IsTagExistsError(err) {
		return true, nil
	}
	return false, err
}

// ListTags returns all tag names in the repository containing path, sorted.
func ListTags(path string) ([]string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// checkTagExists returns a TagExistsError if the tag already exists.
func checkTagExists(repo *git.Repository, name string) error {
	_, err := repo.Reference(plumbing.NewTagReferenceName(name), false)
	if err == nil {
		return &TagExistsError{Tag: name}
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("checking tag existence: %w", err)
	}
	return nil
}

// tagger builds the tag signature from git config, falling back to
// DefaultTaggerName and DefaultTaggerEmail.
func tagger(repo *git.Repository) *object.Signature {
	sig := &object.Signature{
		Name:  DefaultTaggerName,
		Email: DefaultTaggerEmail,
		When:  time.Now(),
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		logger.Debug("reading git config for tagger", zap.Error(err))
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
