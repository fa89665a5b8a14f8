package panels

import (
	"context"

	"PolicyDesk/internal/cli/model"
)

// AssignmentsClient — часть api.Client для назначений моделей.
type AssignmentsClient interface {
	AssignModel(ctx context.Context, scope string, a model.Assignment) (string, error)
}

// Assignments — экран назначений. is_default передаётся как есть:
// разрешение конфликтов между назначениями по умолчанию остаётся на сервере.
type Assignments struct {
	base
	client AssignmentsClient
	by     int64
}

// NewAssignments создаёт экран; assignedBy — ID администратора.
func NewAssignments(client AssignmentsClient, assignedBy int64, o Options) *Assignments {
	p := &Assignments{client: client, by: assignedBy}
	p.init(o)
	return p
}

var scopeNouns = map[string]string{
	model.ScopeUser:       "user",
	model.ScopeDepartment: "department",
	model.ScopeGrade:      "grade",
}

// Assign назначает модель пользователю, подразделению или грейду.
func (p *Assignments) Assign(ctx context.Context, scope string, targetID, modelID int64, isDefault bool) (string, error) {
	noun, ok := scopeNouns[scope]
	if !ok {
		return "", invalid("scope", "Unknown assignment scope "+scope)
	}
	if targetID == 0 || modelID == 0 {
		return "", invalid("assignment", "Please select both a model and a "+noun)
	}
	a := model.Assignment{ModelID: modelID, AssignedBy: p.by, IsDefault: isDefault}
	switch scope {
	case model.ScopeUser:
		a.UserID = targetID
	case model.ScopeDepartment:
		a.DepartmentID = targetID
	case model.ScopeGrade:
		a.GradeID = targetID
	}
	var msg string
	err := p.run(ctx, "assignments."+scope, func(ctx context.Context) error {
		var err error
		msg, err = p.client.AssignModel(ctx, scope, a)
		return err
	}, nil)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Model assigned to " + noun + " successfully"
	}
	return msg, nil
}
