package panels

import (
	"context"
	"sync"

	"PolicyDesk/internal/cli/api"
	"PolicyDesk/internal/cli/model"
)

// fakeAPI — in-memory реализация всех клиентских интерфейсов экранов.
type fakeAPI struct {
	mu sync.Mutex

	departments []model.Department
	grades      []model.Grade
	users       []model.User
	collections []model.Collection
	models      []model.ModelConfig
	history     map[int64][]model.HistoryEntry

	nextID  int64
	err     error // возвращается всеми изменяющими вызовами
	calls   map[string]int
	uploads [][]api.FilePart
	drafts  []model.ModelDraft
	assigns []model.Assignment
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, calls: map[string]int{}, history: map[int64][]model.HistoryEntry{}}
}

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) Departments(context.Context) ([]model.Department, error) {
	f.hit("Departments")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Department(nil), f.departments...), nil
}

func (f *fakeAPI) CreateDepartment(_ context.Context, d model.Department) (int64, error) {
	f.hit("CreateDepartment")
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id()
	f.departments = append(f.departments, d)
	return d.ID, nil
}

func (f *fakeAPI) UpdateDepartment(_ context.Context, id int64, d model.Department) error {
	f.hit("UpdateDepartment")
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.departments {
		if f.departments[i].ID == id {
			f.departments[i].Name = d.Name
		}
	}
	return nil
}

func (f *fakeAPI) DeleteDepartment(_ context.Context, id int64) error {
	f.hit("DeleteDepartment")
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []model.Department
	for _, d := range f.departments {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.departments = kept
	return nil
}

func (f *fakeAPI) Grades(context.Context) ([]model.Grade, error) {
	f.hit("Grades")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Grade(nil), f.grades...), nil
}

func (f *fakeAPI) CreateGrade(_ context.Context, g model.Grade) (int64, error) {
	f.hit("CreateGrade")
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = f.id()
	f.grades = append(f.grades, g)
	return g.ID, nil
}

func (f *fakeAPI) UpdateGrade(_ context.Context, id int64, g model.Grade) error {
	f.hit("UpdateGrade")
	return f.err
}

func (f *fakeAPI) DeleteGrade(_ context.Context, id int64) error {
	f.hit("DeleteGrade")
	return f.err
}

func (f *fakeAPI) Users(context.Context) ([]model.User, error) {
	f.hit("Users")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.User(nil), f.users...), nil
}

func (f *fakeAPI) UsersByDepartment(_ context.Context, departmentID int64) ([]model.User, error) {
	f.hit("UsersByDepartment")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		if u.DepartmentID == departmentID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateUser(_ context.Context, u model.NewUser) (int64, error) {
	f.hit("CreateUser")
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id(), nil
}

func (f *fakeAPI) UpdateUser(context.Context, int64, model.UserUpdate) error {
	f.hit("UpdateUser")
	return f.err
}

func (f *fakeAPI) DeleteUser(context.Context, int64) error {
	f.hit("DeleteUser")
	return f.err
}

func (f *fakeAPI) Collections(context.Context, int64) ([]model.Collection, error) {
	f.hit("Collections")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Collection(nil), f.collections...), nil
}

func (f *fakeAPI) Upload(_ context.Context, _ int64, dbName string, files []api.FilePart) (model.UploadResult, error) {
	f.hit("Upload")
	if f.err != nil {
		return model.UploadResult{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, files)
	f.collections = append(f.collections, model.Collection{ID: f.id(), Name: dbName})
	return model.UploadResult{Message: "ok", CollectionName: dbName}, nil
}

func (f *fakeAPI) DeleteFile(context.Context, int64, string, string) (string, error) {
	f.hit("DeleteFile")
	return "File deleted", f.err
}

func (f *fakeAPI) DeleteCollection(context.Context, int64, string) (string, error) {
	f.hit("DeleteCollection")
	return "Collection deleted", f.err
}

func (f *fakeAPI) Models(context.Context, int64) ([]model.ModelConfig, error) {
	f.hit("Models")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ModelConfig(nil), f.models...), nil
}

func (f *fakeAPI) CreateModel(_ context.Context, d model.ModelDraft) (int64, string, error) {
	f.hit("CreateModel")
	if f.err != nil {
		return 0, "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, d)
	id := f.id()
	f.models = append(f.models, model.ModelConfig{ID: id, Name: d.Name})
	return id, "Model created", nil
}

func (f *fakeAPI) LoadModel(context.Context, int64) (string, error) {
	f.hit("LoadModel")
	return "Model loaded", f.err
}

func (f *fakeAPI) AssignModel(_ context.Context, _ string, a model.Assignment) (string, error) {
	f.hit("AssignModel")
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assigns = append(f.assigns, a)
	return "", nil
}

func (f *fakeAPI) UserHistory(_ context.Context, userID int64) ([]model.HistoryEntry, error) {
	f.hit("UserHistory")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history[userID], nil
}

func declineAll() Options {
	return Options{Confirmer: ConfirmFunc(func(string) bool { return false })}
}
