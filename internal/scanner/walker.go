package scanner

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoveredFile is a source file found during a walk, already classified by
// language.
type DiscoveredFile struct {
	Path     string
	Language Language
}

// Scanner discovers source files under a root directory, honoring
// .gitignore exclusions the way a git-aware file walker would, restricted
// to a set of languages of interest.
type Scanner struct {
	root      string
	languages map[Language]bool
}

// New creates a Scanner rooted at root, scoped to every supported language.
func New(root string) *Scanner {
	return &Scanner{
		root:      root,
		languages: toLanguageSet(AllLanguages()),
	}
}

// WithLanguages narrows the scan to the given languages.
func (s *Scanner) WithLanguages(languages []Language) *Scanner {
	s.languages = toLanguageSet(languages)
	return s
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string {
	return s.root
}

func toLanguageSet(languages []Language) map[Language]bool {
	set := make(map[Language]bool, len(languages))
	for _, l := range languages {
		set[l] = true
	}

	return set
}

// Scan walks the tree rooted at s.Root and returns every file whose
// extension maps to one of the scanner's languages, skipping directories
// and files matched by .gitignore rules found along the way (including the
// repository's top-level .gitignore) and the .git control directory itself.
// Hidden files are not skipped, mirroring a git-aware walker configured to
// include dotfiles.
func (s *Scanner) Scan() ([]DiscoveredFile, error) {
	ignoreStack := newIgnoreStack()

	if rules, err := loadIgnoreFile(filepath.Join(s.root, ".gitignore")); err == nil {
		ignoreStack.push(".", rules)
	}

	var out []DiscoveredFile

	walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Best-effort: skip entries we cannot stat, keep walking.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path != s.root && d.Name() == ".git" {
				return filepath.SkipDir
			}

			if path != s.root && ignoreStack.matches(rel, true) {
				return filepath.SkipDir
			}

			if rules, loadErr := loadIgnoreFile(filepath.Join(path, ".gitignore")); loadErr == nil {
				ignoreStack.push(rel, rules)
			}

			return nil
		}

		if ignoreStack.matches(rel, false) {
			return nil
		}

		lang, ok := FromPath(path)
		if !ok || !s.languages[lang] {
			return nil
		}

		out = append(out, DiscoveredFile{Path: path, Language: lang})

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out, nil
}

// ignoreStack tracks the .gitignore rule sets active at each directory depth
// walked so far, approximating git's cascading-ignore-file semantics: each
// layer's rules apply only to paths under the directory (relative to the scan
// root) whose .gitignore supplied them.
// Negated patterns ("!pattern") are not supported; this is a simplification
// over full gitignore semantics, adequate for skipping build output and
// vendor directories during a scan.
type ignoreStack struct {
	layers []ignoreLayer
}

type ignoreLayer struct {
	base  string
	rules []string
}

func newIgnoreStack() *ignoreStack {
	return &ignoreStack{}
}

func (s *ignoreStack) push(base string, rules []string) {
	s.layers = append(s.layers, ignoreLayer{base: base, rules: rules})
}

func (s *ignoreStack) matches(rel string, isDir bool) bool {
	name := filepath.Base(rel)

	for _, layer := range s.layers {
		if layer.base != "." && !strings.HasPrefix(rel, layer.base+string(filepath.Separator)) {
			continue
		}

		for _, rule := range layer.rules {
			if matchIgnoreRule(rule, rel, name, isDir) {
				return true
			}
		}
	}

	return false
}

func matchIgnoreRule(rule, rel, name string, isDir bool) bool {
	rule = strings.TrimSuffix(rule, "/")
	if rule == "" {
		return false
	}

	if strings.Contains(rule, "/") {
		matched, _ := filepath.Match(rule, filepath.ToSlash(rel))
		return matched
	}

	matched, _ := filepath.Match(rule, name)
	if matched {
		return true
	}

	if isDir {
		return false
	}

	return false
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rules []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		rules = append(rules, line)
	}

	return rules, nil
}
