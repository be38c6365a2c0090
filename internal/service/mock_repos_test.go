package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── Mock PersonRepository ──

type mockPersonRepo struct {
	persons map[string]*model.Person
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{persons: make(map[string]*model.Person)}
}

func (m *mockPersonRepo) Create(_ context.Context, person *model.Person) error {
	if person.PersonID == "" {
		person.PersonID = "p-" + person.Name
	}
	m.persons[person.PersonID] = person
	return nil
}

func (m *mockPersonRepo) GetByID(_ context.Context, id string) (*model.Person, error) {
	if p, ok := m.persons[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) GetByEmail(_ context.Context, email string) (*model.Person, error) {
	for _, p := range m.persons {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonRepo) List(_ context.Context, role, keyword string, offset, limit int) ([]model.Person, int64, error) {
	var result []model.Person
	for _, p := range m.persons {
		if role != "" && p.Role != role {
			continue
		}
		if keyword != "" && !strings.Contains(p.Name, keyword) {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockPersonRepo) ListByRole(_ context.Context, role string) ([]model.Person, error) {
	var result []model.Person
	for _, p := range m.persons {
		if p.Role == role {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPersonRepo) Update(_ context.Context, person *model.Person) error {
	m.persons[person.PersonID] = person
	return nil
}

func (m *mockPersonRepo) Delete(_ context.Context, id string) error {
	delete(m.persons, id)
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups   map[string]*model.Group
	members  map[string]*model.GroupMember
	bindings []model.ServiceRoleGroup
	persons  *mockPersonRepo // resolve member associations at read time
}

func newMockGroupRepo(persons *mockPersonRepo) *mockGroupRepo {
	return &mockGroupRepo{
		groups:  make(map[string]*model.Group),
		members: make(map[string]*model.GroupMember),
		persons: persons,
	}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.GroupID == "" {
		group.GroupID = "g-" + group.Name
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		result = append(result, *g)
	}
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.Group) error {
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

func (m *mockGroupRepo) AddMember(_ context.Context, member *model.GroupMember) error {
	if member.GroupMemberID == "" {
		member.GroupMemberID = fmt.Sprintf("gm-%d", len(m.members)+1)
	}
	m.members[member.GroupMemberID] = member
	return nil
}

func (m *mockGroupRepo) UpdateMember(_ context.Context, member *model.GroupMember) error {
	m.members[member.GroupMemberID] = member
	return nil
}

func (m *mockGroupRepo) RemoveMember(_ context.Context, groupMemberID string) error {
	delete(m.members, groupMemberID)
	return nil
}

func (m *mockGroupRepo) GetMember(_ context.Context, groupMemberID string) (*model.GroupMember, error) {
	if gm, ok := m.members[groupMemberID]; ok {
		return gm, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) ListMembers(_ context.Context, groupID string) ([]model.GroupMember, error) {
	var result []model.GroupMember
	for _, gm := range m.members {
		if gm.GroupID != groupID {
			continue
		}
		member := *gm
		if member.Person == nil {
			if p, ok := m.persons.persons[member.PersonID]; ok {
				member.Person = p
			}
		}
		result = append(result, member)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (m *mockGroupRepo) MaxMemberPosition(_ context.Context, groupID string) (int, error) {
	max := 0
	for _, gm := range m.members {
		if gm.GroupID == groupID && gm.Position > max {
			max = gm.Position
		}
	}
	return max, nil
}

func (m *mockGroupRepo) BindRole(_ context.Context, binding *model.ServiceRoleGroup) error {
	if binding.ServiceRoleGroupID == "" {
		binding.ServiceRoleGroupID = fmt.Sprintf("srg-%d", len(m.bindings)+1)
	}
	m.bindings = append(m.bindings, *binding)
	return nil
}

func (m *mockGroupRepo) UnbindRole(_ context.Context, serviceRoleID, groupID string) error {
	kept := m.bindings[:0]
	for _, b := range m.bindings {
		if b.ServiceRoleID == serviceRoleID && b.GroupID == groupID {
			continue
		}
		kept = append(kept, b)
	}
	m.bindings = kept
	return nil
}

func (m *mockGroupRepo) ListBindingsByRole(_ context.Context, serviceRoleID string) ([]model.ServiceRoleGroup, error) {
	var result []model.ServiceRoleGroup
	for _, b := range m.bindings {
		if b.ServiceRoleID == serviceRoleID {
			result = append(result, b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

// ── Mock ServiceRoleRepository ──

type mockServiceRoleRepo struct {
	roles map[string]*model.ServiceRole
}

func newMockServiceRoleRepo() *mockServiceRoleRepo {
	return &mockServiceRoleRepo{roles: make(map[string]*model.ServiceRole)}
}

func (m *mockServiceRoleRepo) Create(_ context.Context, role *model.ServiceRole) error {
	if role.ServiceRoleID == "" {
		role.ServiceRoleID = "role-" + role.Name
	}
	m.roles[role.ServiceRoleID] = role
	return nil
}

func (m *mockServiceRoleRepo) GetByID(_ context.Context, id string) (*model.ServiceRole, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockServiceRoleRepo) List(_ context.Context) ([]model.ServiceRole, error) {
	var result []model.ServiceRole
	for _, r := range m.roles {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockServiceRoleRepo) Update(_ context.Context, role *model.ServiceRole) error {
	m.roles[role.ServiceRoleID] = role
	return nil
}

func (m *mockServiceRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.EventTemplate
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.EventTemplate)}
}

func (m *mockTemplateRepo) Create(_ context.Context, template *model.EventTemplate) error {
	if template.TemplateID == "" {
		template.TemplateID = "tpl-" + template.Title
	}
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) GetByID(_ context.Context, id string) (*model.EventTemplate, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) List(_ context.Context) ([]model.EventTemplate, error) {
	var result []model.EventTemplate
	for _, t := range m.templates {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTemplateRepo) Update(_ context.Context, template *model.EventTemplate) error {
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) Delete(_ context.Context, id string) error {
	delete(m.templates, id)
	return nil
}

// ── Mock OccurrenceRepository ──

type mockOccurrenceRepo struct {
	occurrences map[string]*model.EventOccurrence
	seq         int
}

func newMockOccurrenceRepo() *mockOccurrenceRepo {
	return &mockOccurrenceRepo{occurrences: make(map[string]*model.EventOccurrence)}
}

func (m *mockOccurrenceRepo) Create(_ context.Context, occurrence *model.EventOccurrence) error {
	if occurrence.OccurrenceID == "" {
		m.seq++
		occurrence.OccurrenceID = fmt.Sprintf("occ-%d", m.seq)
	}
	m.occurrences[occurrence.OccurrenceID] = occurrence
	return nil
}

func (m *mockOccurrenceRepo) GetByID(_ context.Context, id string) (*model.EventOccurrence, error) {
	if o, ok := m.occurrences[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOccurrenceRepo) ExistsByTemplateAndDate(_ context.Context, templateID string, date time.Time) (bool, error) {
	for _, o := range m.occurrences {
		if o.TemplateID != nil && *o.TemplateID == templateID &&
			o.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOccurrenceRepo) List(_ context.Context, templateID, status string, from, to *time.Time, offset, limit int) ([]model.EventOccurrence, int64, error) {
	var result []model.EventOccurrence
	for _, o := range m.occurrences {
		if templateID != "" && (o.TemplateID == nil || *o.TemplateID != templateID) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		if from != nil && o.Date.Before(*from) {
			continue
		}
		if to != nil && o.Date.After(*to) {
			continue
		}
		result = append(result, *o)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, int64(len(result)), nil
}

func (m *mockOccurrenceRepo) ListByStatus(_ context.Context, status string) ([]model.EventOccurrence, error) {
	var result []model.EventOccurrence
	for _, o := range m.occurrences {
		if o.Status == status {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOccurrenceRepo) Update(_ context.Context, occurrence *model.EventOccurrence) error {
	m.occurrences[occurrence.OccurrenceID] = occurrence
	return nil
}

func (m *mockOccurrenceRepo) Delete(_ context.Context, id string) error {
	delete(m.occurrences, id)
	return nil
}

// ── Mock ProgramItemRepository ──

type mockProgramItemRepo struct {
	items []*model.ProgramItem
	seq   int
}

func newMockProgramItemRepo() *mockProgramItemRepo {
	return &mockProgramItemRepo{}
}

func (m *mockProgramItemRepo) Create(_ context.Context, item *model.ProgramItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ProgramItemID == "" {
		m.seq++
		item.ProgramItemID = fmt.Sprintf("pi-%d", m.seq)
	}
	copied := *item
	m.items = append(m.items, &copied)
	return nil
}

func (m *mockProgramItemRepo) BatchCreate(ctx context.Context, items []model.ProgramItem) error {
	for i := range items {
		if err := m.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockProgramItemRepo) GetByID(_ context.Context, id string) (*model.ProgramItem, error) {
	for _, item := range m.items {
		if item.ProgramItemID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramItemRepo) ListByTemplate(_ context.Context, templateID string) ([]model.ProgramItem, error) {
	return m.listOwned(func(item *model.ProgramItem) bool {
		return item.OwnedByTemplate(templateID)
	}), nil
}

func (m *mockProgramItemRepo) ListByOccurrence(_ context.Context, occurrenceID string) ([]model.ProgramItem, error) {
	return m.listOwned(func(item *model.ProgramItem) bool {
		return item.OwnedByOccurrence(occurrenceID)
	}), nil
}

func (m *mockProgramItemRepo) listOwned(match func(*model.ProgramItem) bool) []model.ProgramItem {
	var result []model.ProgramItem
	for _, item := range m.items {
		if match(item) {
			result = append(result, *item)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result
}

func (m *mockProgramItemRepo) Update(_ context.Context, item *model.ProgramItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	for i := range m.items {
		if m.items[i].ProgramItemID == item.ProgramItemID {
			copied := *item
			m.items[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProgramItemRepo) Delete(_ context.Context, id string) error {
	kept := m.items[:0]
	for _, item := range m.items {
		if item.ProgramItemID != id {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []*model.Assignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("a-%d", m.seq)
	}
	copied := *assignment
	m.assignments = append(m.assignments, &copied)
	return nil
}

func (m *mockAssignmentRepo) BatchCreate(ctx context.Context, assignments []model.Assignment) error {
	for i := range assignments {
		if err := m.Create(ctx, &assignments[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.AssignmentID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByTemplate(_ context.Context, templateID string) ([]model.Assignment, error) {
	return m.listOwned(func(a *model.Assignment) bool {
		return a.OwnedByTemplate(templateID)
	}), nil
}

func (m *mockAssignmentRepo) ListByOccurrence(_ context.Context, occurrenceID string) ([]model.Assignment, error) {
	return m.listOwned(func(a *model.Assignment) bool {
		return a.OwnedByOccurrence(occurrenceID)
	}), nil
}

func (m *mockAssignmentRepo) listOwned(match func(*model.Assignment) bool) []model.Assignment {
	var result []model.Assignment
	for _, a := range m.assignments {
		if match(a) {
			result = append(result, *a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result
}

func (m *mockAssignmentRepo) CountByOccurrence(_ context.Context, occurrenceID string) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if a.OwnedByOccurrence(occurrenceID) {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	for i := range m.assignments {
		if m.assignments[i].AssignmentID == assignment.AssignmentID {
			copied := *assignment
			m.assignments[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	return m.DeleteByIDs(context.Background(), []string{id})
}

func (m *mockAssignmentRepo) DeleteByIDs(_ context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.assignments[:0]
	for _, a := range m.assignments {
		if !drop[a.AssignmentID] {
			kept = append(kept, a)
		}
	}
	m.assignments = kept
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks []*model.OccurrenceTask
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.OccurrenceTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	copied := *task
	m.tasks = append(m.tasks, &copied)
	return nil
}

func (m *mockTaskRepo) BatchCreate(ctx context.Context, tasks []model.OccurrenceTask) error {
	for i := range tasks {
		if err := m.Create(ctx, &tasks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.OccurrenceTask, error) {
	for _, t := range m.tasks {
		if t.TaskID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) ListByTemplate(_ context.Context, templateID string) ([]model.OccurrenceTask, error) {
	var result []model.OccurrenceTask
	for _, t := range m.tasks {
		if t.OwnedByTemplate(templateID) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) ListByOccurrence(_ context.Context, occurrenceID string) ([]model.OccurrenceTask, error) {
	var result []model.OccurrenceTask
	for _, t := range m.tasks {
		if t.OwnedByOccurrence(occurrenceID) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.OccurrenceTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	for i := range m.tasks {
		if m.tasks[i].TaskID == task.TaskID {
			copied := *task
			m.tasks[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.TaskID != id {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	return nil
}

// ── Mock ChangeLogRepository ──

type mockChangeLogRepo struct {
	entries []model.ChangeLog
	seq     int
}

func newMockChangeLogRepo() *mockChangeLogRepo {
	return &mockChangeLogRepo{}
}

func (m *mockChangeLogRepo) Create(_ context.Context, entry *model.ChangeLog) error {
	m.seq++
	if entry.ChangeLogID == "" {
		entry.ChangeLogID = fmt.Sprintf("cl-%d", m.seq)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockChangeLogRepo) BatchCreate(ctx context.Context, entries []model.ChangeLog) error {
	for i := range entries {
		if err := m.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockChangeLogRepo) ListByOccurrence(_ context.Context, occurrenceID string, offset, limit int) ([]model.ChangeLog, int64, error) {
	var result []model.ChangeLog
	for _, e := range m.entries {
		if e.OccurrenceID == occurrenceID {
			result = append(result, e)
		}
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock NoticeRepository ──

type mockNoticeRepo struct {
	notices []*model.NoticeMessage
	seq     int
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{}
}

func (m *mockNoticeRepo) Create(_ context.Context, notice *model.NoticeMessage) error {
	m.seq++
	if notice.NoticeID == "" {
		notice.NoticeID = fmt.Sprintf("n-%d", m.seq)
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now()
	}
	copied := *notice
	m.notices = append(m.notices, &copied)
	return nil
}

func (m *mockNoticeRepo) BatchCreate(ctx context.Context, notices []model.NoticeMessage) error {
	for i := range notices {
		if err := m.Create(ctx, &notices[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNoticeRepo) GetByID(_ context.Context, id string) (*model.NoticeMessage, error) {
	for _, n := range m.notices {
		if n.NoticeID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoticeRepo) addressedTo(n *model.NoticeMessage, personID, role string) bool {
	if n.RecipientID != nil && *n.RecipientID == personID {
		return true
	}
	return n.RecipientRole != nil && *n.RecipientRole == role
}

func (m *mockNoticeRepo) ListByRecipient(_ context.Context, personID, role string, offset, limit int) ([]model.NoticeMessage, int64, error) {
	var result []model.NoticeMessage
	for _, n := range m.notices {
		if m.addressedTo(n, personID, role) {
			result = append(result, *n)
		}
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockNoticeRepo) UnreadCount(_ context.Context, personID, role string) (int64, error) {
	var count int64
	for _, n := range m.notices {
		if !n.IsRead && m.addressedTo(n, personID, role) {
			count++
		}
	}
	return count, nil
}

func (m *mockNoticeRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range m.notices {
		if n.NoticeID == id {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNoticeRepo) MarkAllRead(_ context.Context, personID, role string) error {
	for _, n := range m.notices {
		if m.addressedTo(n, personID, role) {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	responses []*model.AttendanceResponse
	seq       int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, response *model.AttendanceResponse) error {
	m.seq++
	if response.AttendanceID == "" {
		response.AttendanceID = fmt.Sprintf("att-%d", m.seq)
	}
	copied := *response
	m.responses = append(m.responses, &copied)
	return nil
}

func (m *mockAttendanceRepo) GetByKey(_ context.Context, occurrenceID, personID, serviceRoleID string) (*model.AttendanceResponse, error) {
	for _, r := range m.responses {
		if r.OccurrenceID == occurrenceID && r.PersonID == personID && r.ServiceRoleID == serviceRoleID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockAttendanceRepo) ListByOccurrence(_ context.Context, occurrenceID string) ([]model.AttendanceResponse, error) {
	var result []model.AttendanceResponse
	for _, r := range m.responses {
		if r.OccurrenceID == occurrenceID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByPerson(_ context.Context, personID string) ([]model.AttendanceResponse, error) {
	var result []model.AttendanceResponse
	for _, r := range m.responses {
		if r.PersonID == personID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, response *model.AttendanceResponse) error {
	for i := range m.responses {
		if m.responses[i].AttendanceID == response.AttendanceID {
			copied := *response
			m.responses[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Aggregate helper ──

type testRepos struct {
	person      *mockPersonRepo
	group       *mockGroupRepo
	serviceRole *mockServiceRoleRepo
	template    *mockTemplateRepo
	occurrence  *mockOccurrenceRepo
	programItem *mockProgramItemRepo
	assignment  *mockAssignmentRepo
	task        *mockTaskRepo
	changeLog   *mockChangeLogRepo
	notice      *mockNoticeRepo
	attendance  *mockAttendanceRepo
}

func newTestRepos() *testRepos {
	person := newMockPersonRepo()
	return &testRepos{
		person:      person,
		group:       newMockGroupRepo(person),
		serviceRole: newMockServiceRoleRepo(),
		template:    newMockTemplateRepo(),
		occurrence:  newMockOccurrenceRepo(),
		programItem: newMockProgramItemRepo(),
		assignment:  newMockAssignmentRepo(),
		task:        newMockTaskRepo(),
		changeLog:   newMockChangeLogRepo(),
		notice:      newMockNoticeRepo(),
		attendance:  newMockAttendanceRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Person:      r.person,
		Group:       r.group,
		ServiceRole: r.serviceRole,
		Template:    r.template,
		Occurrence:  r.occurrence,
		ProgramItem: r.programItem,
		Assignment:  r.assignment,
		Task:        r.task,
		ChangeLog:   r.changeLog,
		Notice:      r.notice,
		Attendance:  r.attendance,
	}
}
