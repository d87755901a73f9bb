package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"assochub/internal/core/domain"
)

// Map-backed repository fakes. Each one implements the full repository
// interface against an in-memory store so service tests run without a
// database.

type fakeMemberRepo struct {
	members map[uint]*domain.Member
	nextID  uint
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uint]*domain.Member), nextID: 1}
}

func (f *fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	m.ID = f.nextID
	f.nextID++
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id uint) (*domain.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) GetByMemberCode(_ context.Context, code string) (*domain.Member, error) {
	for _, m := range f.members {
		if m.MemberCode == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMemberRepo) List(_ context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	all := f.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeMemberRepo) GetByType(_ context.Context, t domain.MemberType) ([]*domain.Member, error) {
	var out []*domain.Member
	for _, m := range f.sorted() {
		if m.MemberType == t {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) GetByStatus(_ context.Context, s domain.MemberStatus) ([]*domain.Member, error) {
	var out []*domain.Member
	for _, m := range f.sorted() {
		if m.Status == s {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) SearchByName(_ context.Context, term string, limit int) ([]*domain.Member, error) {
	var out []*domain.Member
	for _, m := range f.sorted() {
		if strings.Contains(strings.ToLower(m.FullName), strings.ToLower(term)) {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Update(_ context.Context, m *domain.Member) error {
	if _, ok := f.members[m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) UpdateStatus(_ context.Context, id uint, status domain.MemberStatus) error {
	m, ok := f.members[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeMemberRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

func (f *fakeMemberRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.members)), nil
}

func (f *fakeMemberRepo) CountByType(_ context.Context) (map[domain.MemberType]int64, error) {
	out := make(map[domain.MemberType]int64)
	for _, m := range f.members {
		out[m.MemberType]++
	}
	return out, nil
}

func (f *fakeMemberRepo) CountByStatus(_ context.Context, s domain.MemberStatus) (int64, error) {
	var n int64
	for _, m := range f.members {
		if m.Status == s {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) sorted() []*domain.Member {
	out := make([]*domain.Member, 0, len(f.members))
	for _, m := range f.members {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeReportRepo struct {
	reports map[uint]*domain.Report
	nextID  uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uint]*domain.Report), nextID: 1}
}

func (f *fakeReportRepo) Create(_ context.Context, r *domain.Report) error {
	r.ID = f.nextID
	f.nextID++
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id uint) (*domain.Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReportRepo) List(_ context.Context, offset, limit int) ([]*domain.Report, int64, error) {
	all := f.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeReportRepo) GetByType(_ context.Context, t domain.ReportType) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.sorted() {
		if r.ReportType == t {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) GetByStatus(_ context.Context, s domain.ReportStatus) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.sorted() {
		if r.Status == s {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) GetByPeriod(_ context.Context, period string) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.sorted() {
		if r.Period == period {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) GetBySubmitter(_ context.Context, submittedBy uint) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.sorted() {
		if r.SubmittedBy == submittedBy {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) GetByDateRange(_ context.Context, from, to time.Time) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.sorted() {
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) SearchByTitle(_ context.Context, term string, limit int) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.sorted() {
		if strings.Contains(strings.ToLower(r.Title), strings.ToLower(term)) {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReportRepo) Update(_ context.Context, r *domain.Report) error {
	if _, ok := f.reports[r.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeReportRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.reports)), nil
}

func (f *fakeReportRepo) CountByStatus(_ context.Context) (map[domain.ReportStatus]int64, error) {
	out := make(map[domain.ReportStatus]int64)
	for _, r := range f.reports {
		out[r.Status]++
	}
	return out, nil
}

func (f *fakeReportRepo) sorted() []*domain.Report {
	out := make([]*domain.Report, 0, len(f.reports))
	for _, r := range f.reports {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeTaskRepo struct {
	tasks  map[uint]*domain.Task
	nextID uint
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uint]*domain.Task), nextID: 1}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *domain.Task) error {
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uint) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) List(_ context.Context, offset, limit int) ([]*domain.Task, int64, error) {
	all := f.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeTaskRepo) GetByAssignee(_ context.Context, userID uint) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByAssigner(_ context.Context, userID uint) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if t.AssignedBy == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByStatus(_ context.Context, s domain.TaskStatus) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByPriority(_ context.Context, p domain.TaskPriority) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByDueDateRange(_ context.Context, from, to time.Time) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if t.DueDate != nil && !t.DueDate.Before(from) && !t.DueDate.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetOverdue(_ context.Context, now time.Time) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if t.DueDate != nil && t.DueDate.Before(now) && !t.IsTerminal() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) SearchByTitle(_ context.Context, term string, limit int) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range f.sorted() {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(term)) {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.tasks)), nil
}

func (f *fakeTaskRepo) CountByStatus(_ context.Context) (map[domain.TaskStatus]int64, error) {
	out := make(map[domain.TaskStatus]int64)
	for _, t := range f.tasks {
		out[t.Status]++
	}
	return out, nil
}

func (f *fakeTaskRepo) CountOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, t := range f.tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && !t.IsTerminal() {
			n++
		}
	}
	return n, nil
}

func (f *fakeTaskRepo) sorted() []*domain.Task {
	out := make([]*domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uint]*domain.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*domain.RefreshToken), nextID: 1}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, t *domain.RefreshToken) error {
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.tokens[t.ID] = &cp
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	for _, t := range f.tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	t, ok := f.tokens[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	now := time.Now()
	for id, t := range f.tokens {
		if t.ExpiresAt.Before(now) {
			delete(f.tokens, id)
		}
	}
	return nil
}
