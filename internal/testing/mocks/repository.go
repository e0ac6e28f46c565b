package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/vsh/internal/vcs"
)

// MockRepository is an in-memory vcs.Repository. It keeps just enough
// state for commands to observe their effects, records every mutating call
// and returns OpErrors[method] when set.
type MockRepository struct {
	Mu sync.Mutex

	StatusVal   []vcs.FileStatus
	CommitsVal  []vcs.Commit // newest first
	BranchesVal []string
	Current     string
	TagsVal     []string
	RemotesVal  []vcs.Remote
	StashesVal  []vcs.StashEntry // newest first
	DiffVal     string

	OpErrors map[string]error
	Calls    []string
}

// NewMockRepository returns an empty repository on branch main.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		BranchesVal: []string{"main"},
		Current:     "main",
		OpErrors:    make(map[string]error),
	}
}

// WithCommit appends an older commit to the history.
func (m *MockRepository) WithCommit(hash, message string) *MockRepository {
	m.CommitsVal = append(m.CommitsVal, vcs.Commit{
		Hash:    hash,
		Author:  "vsh",
		Email:   "vsh@localhost",
		When:    time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Message: message,
	})
	return m
}

// WithStatus sets the working tree status.
func (m *MockRepository) WithStatus(entries ...vcs.FileStatus) *MockRepository {
	m.StatusVal = entries
	return m
}

func (m *MockRepository) enter(ctx context.Context, op string, call string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if call != "" {
		m.Calls = append(m.Calls, call)
	}
	return m.OpErrors[op]
}

func (m *MockRepository) Status(ctx context.Context) ([]vcs.FileStatus, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Status", ""); err != nil {
		return nil, err
	}
	return append([]vcs.FileStatus(nil), m.StatusVal...), nil
}

func (m *MockRepository) Add(ctx context.Context, paths ...string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Add", "add "+strings.Join(paths, " ")); err != nil {
		return err
	}
	for i, s := range m.StatusVal {
		for _, p := range paths {
			if s.Path == p || strings.HasPrefix(s.Path, p+"/") || p == "" {
				m.StatusVal[i] = stage(s)
			}
		}
	}
	return nil
}

func (m *MockRepository) AddAll(ctx context.Context) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "AddAll", "add --all"); err != nil {
		return err
	}
	for i, s := range m.StatusVal {
		m.StatusVal[i] = stage(s)
	}
	return nil
}

func stage(s vcs.FileStatus) vcs.FileStatus {
	switch {
	case s.Untracked():
		s.Staging = vcs.StatusAdded
	case s.Worktree != vcs.StatusUnmodified:
		s.Staging = s.Worktree
	}
	s.Worktree = vcs.StatusUnmodified
	return s
}

func (m *MockRepository) Commit(ctx context.Context, message string) (vcs.Commit, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Commit", "commit "+message); err != nil {
		return vcs.Commit{}, err
	}
	var rest []vcs.FileStatus
	staged := false
	for _, s := range m.StatusVal {
		if s.Staged() {
			staged = true
			continue
		}
		rest = append(rest, s)
	}
	if !staged {
		return vcs.Commit{}, &vcs.NothingToCommitError{}
	}
	c := vcs.Commit{
		Hash:    fmt.Sprintf("%040x", len(m.CommitsVal)+1),
		Author:  "vsh",
		Email:   "vsh@localhost",
		When:    time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Message: message,
	}
	m.CommitsVal = append([]vcs.Commit{c}, m.CommitsVal...)
	m.StatusVal = rest
	return c, nil
}

func (m *MockRepository) Log(ctx context.Context, limit int) ([]vcs.Commit, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Log", ""); err != nil {
		return nil, err
	}
	if len(m.CommitsVal) == 0 {
		return nil, &vcs.NoCommitsError{}
	}
	out := m.CommitsVal
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return append([]vcs.Commit(nil), out...), nil
}

func (m *MockRepository) Branches(ctx context.Context) ([]string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Branches", ""); err != nil {
		return nil, err
	}
	out := append([]string(nil), m.BranchesVal...)
	sort.Strings(out)
	return out, nil
}

func (m *MockRepository) CurrentBranch(ctx context.Context) (string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "CurrentBranch", ""); err != nil {
		return "", err
	}
	return m.Current, nil
}

func (m *MockRepository) CreateBranch(ctx context.Context, name string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "CreateBranch", "branch "+name); err != nil {
		return err
	}
	if contains(m.BranchesVal, name) {
		return &vcs.BranchExistsError{Name: name}
	}
	m.BranchesVal = append(m.BranchesVal, name)
	return nil
}

func (m *MockRepository) DeleteBranch(ctx context.Context, name string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "DeleteBranch", "branch -d "+name); err != nil {
		return err
	}
	if !contains(m.BranchesVal, name) {
		return &vcs.RevisionError{Revision: name}
	}
	m.BranchesVal = remove(m.BranchesVal, name)
	return nil
}

func (m *MockRepository) Checkout(ctx context.Context, target string, create bool) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	call := "checkout " + target
	if create {
		call = "checkout -b " + target
	}
	if err := m.enter(ctx, "Checkout", call); err != nil {
		return err
	}
	switch {
	case create && contains(m.BranchesVal, target):
		return &vcs.BranchExistsError{Name: target}
	case create:
		m.BranchesVal = append(m.BranchesVal, target)
	case !contains(m.BranchesVal, target) && m.find(target) < 0:
		return &vcs.RevisionError{Revision: target}
	}
	m.Current = target
	return nil
}

func (m *MockRepository) find(rev string) int {
	if rev == "" || rev == "HEAD" {
		if len(m.CommitsVal) == 0 {
			return -1
		}
		return 0
	}
	for i, c := range m.CommitsVal {
		if strings.HasPrefix(c.Hash, rev) {
			return i
		}
	}
	return -1
}

func (m *MockRepository) Reset(ctx context.Context, target string, mode vcs.ResetMode) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Reset", fmt.Sprintf("reset %d %s", mode, target)); err != nil {
		return err
	}
	i := m.find(target)
	if i < 0 {
		return &vcs.RevisionError{Revision: target}
	}
	m.CommitsVal = m.CommitsVal[i:]
	if mode == vcs.ResetHard {
		var kept []vcs.FileStatus
		for _, s := range m.StatusVal {
			if s.Untracked() {
				kept = append(kept, s)
			}
		}
		m.StatusVal = kept
	}
	return nil
}

func (m *MockRepository) Diff(ctx context.Context, from string, paths ...string) (string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	call := strings.TrimSpace("diff " + from + " -- " + strings.Join(paths, " "))
	if err := m.enter(ctx, "Diff", call); err != nil {
		return "", err
	}
	return m.DiffVal, nil
}

func (m *MockRepository) Tags(ctx context.Context) ([]string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Tags", ""); err != nil {
		return nil, err
	}
	out := append([]string(nil), m.TagsVal...)
	sort.Strings(out)
	return out, nil
}

func (m *MockRepository) CreateTag(ctx context.Context, name string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "CreateTag", "tag "+name); err != nil {
		return err
	}
	m.TagsVal = append(m.TagsVal, name)
	return nil
}

func (m *MockRepository) DeleteTag(ctx context.Context, name string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "DeleteTag", "tag -d "+name); err != nil {
		return err
	}
	if !contains(m.TagsVal, name) {
		return &vcs.RevisionError{Revision: name}
	}
	m.TagsVal = remove(m.TagsVal, name)
	return nil
}

func (m *MockRepository) Remotes(ctx context.Context) ([]vcs.Remote, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "Remotes", ""); err != nil {
		return nil, err
	}
	return append([]vcs.Remote(nil), m.RemotesVal...), nil
}

func (m *MockRepository) AddRemote(ctx context.Context, name, url string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "AddRemote", "remote add "+name+" "+url); err != nil {
		return err
	}
	m.RemotesVal = append(m.RemotesVal, vcs.Remote{Name: name, URL: url})
	return nil
}

func (m *MockRepository) network(ctx context.Context, op, remote string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, op, strings.ToLower(op)+" "+remote); err != nil {
		return err
	}
	for _, r := range m.RemotesVal {
		if r.Name == remote {
			return nil
		}
	}
	return &vcs.RemoteMissingError{Name: remote}
}

func (m *MockRepository) Push(ctx context.Context, remote string) error {
	return m.network(ctx, "Push", remote)
}

func (m *MockRepository) Pull(ctx context.Context, remote string) error {
	return m.network(ctx, "Pull", remote)
}

func (m *MockRepository) Fetch(ctx context.Context, remote string) error {
	return m.network(ctx, "Fetch", remote)
}

func (m *MockRepository) StashPush(ctx context.Context, message string) (vcs.StashEntry, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "StashPush", "stash push "+message); err != nil {
		return vcs.StashEntry{}, err
	}
	var files []string
	var kept []vcs.FileStatus
	for _, s := range m.StatusVal {
		if s.Untracked() {
			kept = append(kept, s)
			continue
		}
		files = append(files, s.Path)
	}
	if len(files) == 0 {
		return vcs.StashEntry{}, vcs.ErrNothingToStash
	}
	if message == "" {
		message = "WIP"
	}
	e := vcs.StashEntry{Branch: m.Current, Message: message, Files: files}
	m.StashesVal = append([]vcs.StashEntry{e}, m.StashesVal...)
	m.StatusVal = kept
	return e, nil
}

func (m *MockRepository) StashPop(ctx context.Context) (vcs.StashEntry, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "StashPop", "stash pop"); err != nil {
		return vcs.StashEntry{}, err
	}
	if len(m.StashesVal) == 0 {
		return vcs.StashEntry{}, vcs.ErrNoStash
	}
	e := m.StashesVal[0]
	m.StashesVal = m.StashesVal[1:]
	for _, f := range e.Files {
		m.StatusVal = append(m.StatusVal, vcs.FileStatus{Path: f, Staging: vcs.StatusUnmodified, Worktree: vcs.StatusModified})
	}
	return e, nil
}

func (m *MockRepository) StashList(ctx context.Context) ([]vcs.StashEntry, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if err := m.enter(ctx, "StashList", ""); err != nil {
		return nil, err
	}
	return append([]vcs.StashEntry(nil), m.StashesVal...), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	var out []string
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

var _ vcs.Repository = (*MockRepository)(nil)
