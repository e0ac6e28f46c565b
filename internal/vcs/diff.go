package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 3

func (g *GoGit) Diff(ctx context.Context, from string, paths ...string) (string, error) {
	st, err := g.Status(ctx)
	if err != nil {
		return "", err
	}

	base := map[string]string{}
	candidates := map[string]bool{}
	if _, herr := g.head(); herr == nil {
		fromFiles, err := g.treeFiles(from)
		if err != nil {
			return "", err
		}
		base = fromFiles
		headFiles, err := g.treeFiles("HEAD")
		if err != nil {
			return "", err
		}
		for p := range fromFiles {
			candidates[p] = true
		}
		for p := range headFiles {
			candidates[p] = true
		}
	} else if from != "" && from != "HEAD" {
		return "", herr
	}
	for _, s := range st {
		if !s.Untracked() {
			candidates[s.Path] = true
		}
	}

	var names []string
	for p := range candidates {
		if matchesAny(p, paths) {
			names = append(names, p)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		oldText, existed := base[name]
		data, err := util.ReadFile(g.wt, name)
		exists := err == nil
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", &GitError{Op: "diff", Cause: err}
		}
		newText := string(data)
		if existed == exists && oldText == newText {
			continue
		}
		writeFileDiff(&b, name, oldText, newText, existed, exists)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func matchesAny(p string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, pre := range prefixes {
		pre = strings.Trim(pre, "/")
		if pre == "" || pre == "." || p == pre || strings.HasPrefix(p, pre+"/") {
			return true
		}
	}
	return false
}

func (g *GoGit) treeFiles(rev string) (map[string]string, error) {
	h, err := g.resolve(rev)
	if err != nil {
		return nil, err
	}
	c, err := g.repo.CommitObject(h)
	if err != nil {
		return nil, &RevisionError{Revision: rev, Cause: err}
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, &GitError{Op: "diff", Cause: err}
	}
	files := map[string]string{}
	err = tree.Files().ForEach(func(f *object.File) error {
		contents, err := f.Contents()
		if err != nil {
			return err
		}
		files[f.Name] = contents
		return nil
	})
	if err != nil {
		return nil, &GitError{Op: "diff", Cause: err}
	}
	return files, nil
}

type lineOp struct {
	kind byte // ' ', '-' or '+'
	text string
}

func writeFileDiff(b *strings.Builder, name, oldText, newText string, existed, exists bool) {
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", name, name)
	switch {
	case !existed:
		b.WriteString("new file\n--- /dev/null\n")
		fmt.Fprintf(b, "+++ b/%s\n", name)
	case !exists:
		b.WriteString("deleted file\n")
		fmt.Fprintf(b, "--- a/%s\n+++ /dev/null\n", name)
	default:
		fmt.Fprintf(b, "--- a/%s\n+++ b/%s\n", name, name)
	}
	b.WriteString(unified(lineOps(oldText, newText)))
}

func lineOps(oldText, newText string) []lineOp {
	var ops []lineOp
	for _, d := range diff.Do(oldText, newText) {
		kind := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = '-'
		case diffmatchpatch.DiffInsert:
			kind = '+'
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			ops = append(ops, lineOp{kind: kind, text: strings.TrimSuffix(line, "\n")})
		}
	}
	return ops
}

// unified renders ops as hunks with diffContext lines of context.
func unified(ops []lineOp) string {
	var b strings.Builder
	i := 0
	oldLine, newLine := 1, 1
	for i < len(ops) {
		if ops[i].kind == ' ' {
			i++
			oldLine++
			newLine++
			continue
		}
		start := max(0, i-diffContext)
		end := i
		for j := i; j < len(ops); j++ {
			if ops[j].kind != ' ' {
				end = j
				continue
			}
			if j-end > 2*diffContext {
				break
			}
		}
		end = min(len(ops)-1, end+diffContext)

		oldStart, newStart := oldLine-(i-start), newLine-(i-start)
		oldCount, newCount := 0, 0
		for _, op := range ops[start : end+1] {
			if op.kind != '+' {
				oldCount++
			}
			if op.kind != '-' {
				newCount++
			}
		}
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", hunkRange(oldStart, oldCount), hunkRange(newStart, newCount))
		for _, op := range ops[start : end+1] {
			b.WriteByte(op.kind)
			b.WriteString(op.text)
			b.WriteByte('\n')
		}
		for _, op := range ops[i : end+1] {
			if op.kind != '+' {
				oldLine++
			}
			if op.kind != '-' {
				newLine++
			}
		}
		i = end + 1
	}
	return b.String()
}

func hunkRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start-1)
	}
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
