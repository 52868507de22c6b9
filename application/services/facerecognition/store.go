package facerecognition

import (
	"context"

	"attendly.io/application/repository"
	"attendly.io/entities"
)

// mongoTemplateStore adapts the FaceTemplates repository to TemplateStore.
type mongoTemplateStore struct{}

func (mongoTemplateStore) FindByEmployee(ctx context.Context, employeeID string) (*entities.FaceTemplate, error) {
	return repository.FaceTemplateRepo().FindOneByFilter(ctx, map[string]interface{}{
		"employeeID": employeeID,
		"deletedAt":  nil,
	})
}

func (mongoTemplateStore) FindAll(ctx context.Context) ([]entities.FaceTemplate, error) {
	return repository.FaceTemplateRepo().FindMany(ctx, map[string]interface{}{
		"deletedAt": nil,
	})
}

func (mongoTemplateStore) Save(ctx context.Context, template entities.FaceTemplate) (*entities.FaceTemplate, error) {
	return repository.FaceTemplateRepo().UpsertByFilter(ctx, map[string]interface{}{
		"employeeID": template.EmployeeID,
	}, template)
}

func (mongoTemplateStore) Delete(ctx context.Context, employeeID string) error {
	_, err := repository.FaceTemplateRepo().DeleteByFilter(ctx, map[string]interface{}{
		"employeeID": employeeID,
	})
	return err
}
