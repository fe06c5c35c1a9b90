package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
)

// In-memory repository fakes. They emulate the store's contract closely
// enough for service-level tests: gorm.ErrRecordNotFound for missing rows,
// per-id serialization in UpdateLocked, deterministic ordering.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
	roles  map[string]*model.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID: 1,
		users:  make(map[uint]*model.User),
		roles: map[string]*model.Role{
			model.RoleAdmin:        {ID: 1, Name: model.RoleAdmin},
			model.RoleProfessional: {ID: 2, Name: model.RoleProfessional},
			model.RoleCustomer:     {ID: 3, Name: model.RoleCustomer},
		},
	}
}

func (f *fakeUserRepo) addUser(username, email, roleName string, active bool) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := &model.User{
		ID:       f.nextID,
		Username: username,
		Email:    email,
		Active:   active,
		Roles:    []model.Role{*f.roles[roleName]},
	}
	f.users[user.ID] = user
	f.nextID++
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User, role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.ID = f.nextID
	user.Roles = []model.Role{*role}
	copied := *user
	f.users[user.ID] = &copied
	f.nextID++
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(_ context.Context, name string) (*model.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeUserRepo) RoleNamesOf(_ context.Context, userID uint) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	names := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		names = append(names, role.Name)
	}
	return names, nil
}

func (f *fakeUserRepo) FindByRole(_ context.Context, roleName string, activeOnly bool) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.User
	for _, user := range f.users {
		if activeOnly && !user.Active {
			continue
		}
		for _, role := range user.Roles {
			if role.Name == roleName {
				out = append(out, *user)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, roleName string) (int64, error) {
	users, _ := f.FindByRole(ctx, roleName, false)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id uint, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Active = active
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   uint
	requests map[uint]*model.ServiceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		nextID:   1,
		requests: make(map[uint]*model.ServiceRequest),
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *model.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	request.ID = f.nextID
	copied := *request
	f.requests[request.ID] = &copied
	f.nextID++
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uint) (*model.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) all() []model.ServiceRequest {
	out := make([]model.ServiceRequest, 0, len(f.requests))
	for _, request := range f.requests {
		out = append(out, *request)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRequestRepo) filter(keep func(model.ServiceRequest) bool) []model.ServiceRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.ServiceRequest
	for _, request := range f.all() {
		if keep(request) {
			out = append(out, request)
		}
	}
	return out
}

func (f *fakeRequestRepo) FindAll(_ context.Context) ([]model.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.all(), nil
}

func (f *fakeRequestRepo) FindByCustomer(_ context.Context, customerID uint) ([]model.ServiceRequest, error) {
	return f.filter(func(r model.ServiceRequest) bool { return r.CustomerID == customerID }), nil
}

func (f *fakeRequestRepo) FindByProfessional(_ context.Context, professionalID uint) ([]model.ServiceRequest, error) {
	return f.filter(func(r model.ServiceRequest) bool {
		return r.ProfessionalID != nil && *r.ProfessionalID == professionalID
	}), nil
}

func (f *fakeRequestRepo) CountByProfessionalAndStatus(_ context.Context, professionalID uint, status model.RequestStatus) (int64, error) {
	matches := f.filter(func(r model.ServiceRequest) bool {
		return r.ProfessionalID != nil && *r.ProfessionalID == professionalID && r.Status == status
	})
	return int64(len(matches)), nil
}

func (f *fakeRequestRepo) FindRequestedSince(_ context.Context, customerID uint, since time.Time) ([]model.ServiceRequest, error) {
	return f.filter(func(r model.ServiceRequest) bool {
		return r.CustomerID == customerID && !r.DateOfRequest.Before(since)
	}), nil
}

func (f *fakeRequestRepo) FindClosedSince(_ context.Context, customerID uint, since time.Time) ([]model.ServiceRequest, error) {
	return f.filter(func(r model.ServiceRequest) bool {
		return r.CustomerID == customerID &&
			r.Status == model.StatusClosed &&
			r.DateOfCompletion != nil &&
			!r.DateOfCompletion.Before(since)
	}), nil
}

func (f *fakeRequestRepo) SearchForAdmin(_ context.Context, query string) ([]model.ServiceRequest, error) {
	return f.filter(func(r model.ServiceRequest) bool {
		return containsFold(r.Remarks, query) ||
			(r.Service != nil && containsFold(r.Service.Name, query))
	}), nil
}

func (f *fakeRequestRepo) UpdateLocked(_ context.Context, id uint, mutate func(*model.ServiceRequest) error) (*model.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	working := *request
	if err := mutate(&working); err != nil {
		return nil, err
	}
	f.requests[id] = &working

	copied := working
	return &copied, nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.requests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeRequestRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.requests)), nil
}

func (f *fakeRequestRepo) CountByStatus(_ context.Context, status model.RequestStatus) (int64, error) {
	return int64(len(f.filter(func(r model.ServiceRequest) bool { return r.Status == status }))), nil
}

func (f *fakeRequestRepo) CountNotStatus(_ context.Context, status model.RequestStatus) (int64, error) {
	return int64(len(f.filter(func(r model.ServiceRequest) bool { return r.Status != status }))), nil
}

func (f *fakeRequestRepo) CountByProfessional(_ context.Context, professionalID uint) (int64, error) {
	return int64(len(f.filter(func(r model.ServiceRequest) bool {
		return r.ProfessionalID != nil && *r.ProfessionalID == professionalID
	}))), nil
}

func (f *fakeRequestRepo) CountByCustomer(_ context.Context, customerID uint) (int64, error) {
	return int64(len(f.filter(func(r model.ServiceRequest) bool { return r.CustomerID == customerID }))), nil
}

func (f *fakeRequestRepo) CountByCustomerAndStatus(_ context.Context, customerID uint, status model.RequestStatus) (int64, error) {
	return int64(len(f.filter(func(r model.ServiceRequest) bool {
		return r.CustomerID == customerID && r.Status == status
	}))), nil
}

func (f *fakeRequestRepo) CountByCustomerNotStatus(_ context.Context, customerID uint, status model.RequestStatus) (int64, error) {
	return int64(len(f.filter(func(r model.ServiceRequest) bool {
		return r.CustomerID == customerID && r.Status != status
	}))), nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	nextID   uint
	services map[uint]*model.Service
	requests *fakeRequestRepo
}

func newFakeServiceRepo(requests *fakeRequestRepo) *fakeServiceRepo {
	return &fakeServiceRepo{
		nextID:   1,
		services: make(map[uint]*model.Service),
		requests: requests,
	}
}

func (f *fakeServiceRepo) addService(name string, categoryID uint) *model.Service {
	f.mu.Lock()
	defer f.mu.Unlock()

	service := &model.Service{ID: f.nextID, Name: name, CategoryID: categoryID}
	f.services[service.ID] = service
	f.nextID++
	return service
}

func (f *fakeServiceRepo) Create(_ context.Context, service *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	service.ID = f.nextID
	copied := *service
	f.services[service.ID] = &copied
	f.nextID++
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uint) (*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	service, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *service
	return &copied, nil
}

func (f *fakeServiceRepo) FindAll(_ context.Context) ([]model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Service, 0, len(f.services))
	for _, service := range f.services {
		out = append(out, *service)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeServiceRepo) FindByCategory(ctx context.Context, categoryID uint) ([]model.Service, error) {
	all, _ := f.FindAll(ctx)
	var out []model.Service
	for _, service := range all {
		if service.CategoryID == categoryID {
			out = append(out, service)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) SearchByName(ctx context.Context, query string) ([]model.Service, error) {
	all, _ := f.FindAll(ctx)
	var out []model.Service
	for _, service := range all {
		if containsFold(service.Name, query) {
			out = append(out, service)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, service *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.services[service.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *service
	f.services[service.ID] = &copied
	return nil
}

func (f *fakeServiceRepo) DeleteWithDependents(ctx context.Context, id uint) error {
	f.mu.Lock()
	if _, ok := f.services[id]; !ok {
		f.mu.Unlock()
		return gorm.ErrRecordNotFound
	}
	delete(f.services, id)
	f.mu.Unlock()

	for _, request := range f.requests.filter(func(r model.ServiceRequest) bool { return r.ServiceID == id }) {
		_ = f.requests.Delete(ctx, request.ID)
	}
	return nil
}

func (f *fakeServiceRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.services)), nil
}

// TopRequested mirrors the SQL ranking: request count descending, service id
// ascending on ties.
func (f *fakeServiceRepo) TopRequested(ctx context.Context, limit int) ([]repository.PopularService, error) {
	counts := make(map[uint]int64)
	for _, request := range f.requests.filter(func(model.ServiceRequest) bool { return true }) {
		counts[request.ServiceID]++
	}

	var rows []repository.PopularService
	f.mu.Lock()
	for id, count := range counts {
		name := ""
		if service, ok := f.services[id]; ok {
			name = service.Name
		}
		rows = append(rows, repository.PopularService{ServiceID: id, Name: name, RequestCount: count})
	}
	f.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RequestCount != rows[j].RequestCount {
			return rows[i].RequestCount > rows[j].RequestCount
		}
		return rows[i].ServiceID < rows[j].ServiceID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     uint
	categories map[uint]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		nextID:     1,
		categories: make(map[uint]*model.Category),
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	category.ID = f.nextID
	copied := *category
	f.categories[category.ID] = &copied
	f.nextID++
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uint) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	category, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Category, 0, len(f.categories))
	for _, category := range f.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCategoryRepo) ListNames(ctx context.Context) ([]string, error) {
	all, _ := f.FindAll(ctx)
	names := make([]string, 0, len(all))
	for _, category := range all {
		names = append(names, category.Name)
	}
	return names, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.categories)), nil
}

type fakeFeedbackRepo struct {
	mu      sync.Mutex
	nextID  uint
	entries []model.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{nextID: 1}
}

func (f *fakeFeedbackRepo) Create(_ context.Context, feedback *model.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	feedback.ID = f.nextID
	f.entries = append(f.entries, *feedback)
	f.nextID++
	return nil
}

func (f *fakeFeedbackRepo) FindAllDetailed(_ context.Context) ([]repository.FeedbackDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]repository.FeedbackDetail, 0, len(f.entries))
	for _, entry := range f.entries {
		rows = append(rows, repository.FeedbackDetail{
			ID:         entry.ID,
			ServiceID:  entry.ServiceID,
			CustomerID: entry.CustomerID,
			Rating:     entry.Rating,
			Comments:   entry.Comments,
			Date:       entry.Date,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ServiceID != rows[j].ServiceID {
			return rows[i].ServiceID < rows[j].ServiceID
		}
		return rows[i].Rating > rows[j].Rating
	})
	return rows, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
