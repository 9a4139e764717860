// i18n-check verifies that every string key used by the templates and
// handlers is defined, and that language files under config/i18n only carry
// known keys. It exits non-zero when a used key has no built-in string.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"nft-gallery/internal/config"
)

// Severity levels
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is a single check result
type Finding struct {
	Severity string
	Key      string
	Message  string
	File     string
}

// Report holds the complete analysis results
type Report struct {
	UsedKeys     map[string][]string // key -> files using it
	LanguageKeys map[string][]string // language file -> keys
	Findings     []Finding
}

// Errors counts error findings
func (r *Report) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

var (
	templateKeyPattern = regexp.MustCompile(`i18n\s+"([a-z0-9_.]+)"`)
	codeKeyPattern     = regexp.MustCompile(`I18n\("([a-z0-9_.]+)"\)`)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var projectPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:          "i18n-check",
		Short:        "Check i18n key usage against the built-in strings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			report, err := analyzeProject(absPath)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report, verbose)
			if n := report.Errors(); n > 0 {
				return fmt.Errorf("%d undefined i18n keys", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&projectPath, "path", ".", "path to the project root")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every key")
	return cmd
}

func analyzeProject(root string) (*Report, error) {
	report := &Report{
		UsedKeys:     make(map[string][]string),
		LanguageKeys: make(map[string][]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		for _, re := range []*regexp.Regexp{templateKeyPattern, codeKeyPattern} {
			for _, m := range re.FindAllStringSubmatch(string(content), -1) {
				report.UsedKeys[m[1]] = appendUnique(report.UsedKeys[m[1]], rel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning sources: %w", err)
	}

	builtin := make(map[string]bool)
	for _, k := range config.I18nKeys() {
		builtin[k] = true
	}

	for _, key := range sortedKeys(report.UsedKeys) {
		if !builtin[key] {
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityError,
				Key:      key,
				Message:  "used but has no built-in string",
				File:     strings.Join(report.UsedKeys[key], ", "),
			})
		}
	}
	for _, key := range config.I18nKeys() {
		if _, ok := report.UsedKeys[key]; !ok {
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityInfo,
				Key:      key,
				Message:  "built-in string is never used",
			})
		}
	}

	langFiles, _ := filepath.Glob(filepath.Join(root, "config", "i18n", "*.json"))
	for _, path := range langFiles {
		if err := checkLanguageFile(report, root, path, builtin); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func checkLanguageFile(report *Report, root, path string, builtin map[string]bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rel, _ := filepath.Rel(root, path)

	var strs config.I18nStrings
	if err := json.Unmarshal(content, &strs); err != nil {
		report.Findings = append(report.Findings, Finding{Severity: SeverityError, Message: "invalid JSON: " + err.Error(), File: rel})
		return nil
	}
	for key := range strs {
		report.LanguageKeys[rel] = append(report.LanguageKeys[rel], key)
		if !builtin[key] {
			report.Findings = append(report.Findings, Finding{Severity: SeverityWarning, Key: key, Message: "unknown key", File: rel})
		}
	}
	sort.Strings(report.LanguageKeys[rel])
	for key := range builtin {
		if _, ok := strs[key]; !ok {
			report.Findings = append(report.Findings, Finding{Severity: SeverityInfo, Key: key, Message: "missing, falls back to English", File: rel})
		}
	}
	return nil
}

func printReport(w io.Writer, report *Report, verbose bool) {
	fmt.Fprintln(w, "i18n Key Checker")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "Keys used: %d\n", len(report.UsedKeys))
	if verbose {
		for _, key := range sortedKeys(report.UsedKeys) {
			fmt.Fprintf(w, "  %-24s %s\n", key, strings.Join(report.UsedKeys[key], ", "))
		}
	}
	for _, file := range sortedKeys(report.LanguageKeys) {
		fmt.Fprintf(w, "Language file %s: %d keys\n", file, len(report.LanguageKeys[file]))
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		return severityRank(report.Findings[i].Severity) < severityRank(report.Findings[j].Severity)
	})
	for _, f := range report.Findings {
		if f.Severity == SeverityInfo && !verbose {
			continue
		}
		loc := ""
		if f.File != "" {
			loc = " (" + f.File + ")"
		}
		fmt.Fprintf(w, "[%s] %s: %s%s\n", f.Severity, f.Key, f.Message, loc)
	}
	fmt.Fprintf(w, "\nErrors: %d\n", report.Errors())
}

func severityRank(s string) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
