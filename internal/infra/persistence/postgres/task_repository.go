package postgres

import (
	"context"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the repository.TaskRepository interface.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a task by its unique ID.
func (repo *taskRepository) FindByID(ctx context.Context, id uint64) (*entity.Task, error) {
	var taskM model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&taskM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by ID")
	}

	return toTaskDomain(&taskM), nil
}

// Find lists tasks matching the filter.
func (repo *taskRepository) Find(ctx context.Context, filter entity.TaskFilter) ([]*entity.Task, error) {
	var taskModels []*model.TaskModel

	if err := repo.db.WithContext(ctx).
		Scopes(taskFilterScope(filter), paginate(filter.Limit, filter.Offset)).
		Order("id ASC").
		Find(&taskModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find tasks")
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// Count returns the number of tasks matching the filter.
func (repo *taskRepository) Count(ctx context.Context, filter entity.TaskFilter) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Scopes(taskFilterScope(filter)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count tasks")
	}

	return count, nil
}

// Create persists a new task.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		return taskWriteErrors.translate(err, domainerrors.ErrTaskCreationFailed, "failed to create task")
	}

	// Update the entity with generated values
	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Update writes title, description, completion and owner of an existing task.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{ID: task.ID}).
		Select("title", "description", "completed", "owner", "updated_at").
		Updates(fromTaskDomain(task))
	if result.Error != nil {
		return taskWriteErrors.translate(result.Error, domainerrors.ErrTaskUpdateFailed, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// UpdateFields applies the non-nil fields of patch to one task.
func (repo *taskRepository) UpdateFields(ctx context.Context, id uint64, patch *entity.TaskPatch) error {
	if patch.IsEmpty() {
		_, err := repo.FindByID(ctx, id)

		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{ID: id}).
		Updates(taskPatchColumns(patch))
	if result.Error != nil {
		return taskWriteErrors.translate(result.Error, domainerrors.ErrTaskUpdateFailed, "failed to patch task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// UpdateAll applies the non-nil fields of patch to every task matching the filter.
func (repo *taskRepository) UpdateAll(ctx context.Context, patch *entity.TaskPatch, filter entity.TaskFilter) (int64, error) {
	if patch.IsEmpty() {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.TaskModel{}).
		Scopes(taskFilterScope(filter)).
		Updates(taskPatchColumns(patch))
	if result.Error != nil {
		return 0, taskWriteErrors.translate(result.Error, domainerrors.ErrTaskUpdateFailed, "failed to update tasks")
	}

	return result.RowsAffected, nil
}

// Delete removes a task by ID.
func (repo *taskRepository) Delete(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Delete(&model.TaskModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func taskFilterScope(filter entity.TaskFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Owner != "" {
			db = db.Where("owner = ?", filter.Owner)
		}
		if filter.Completed != nil {
			db = db.Where("completed = ?", *filter.Completed)
		}

		return db
	}
}

func taskPatchColumns(patch *entity.TaskPatch) map[string]any {
	columns := make(map[string]any, 4)
	if patch.Title != nil {
		columns["title"] = *patch.Title
	}
	if patch.Description != nil {
		columns["description"] = *patch.Description
	}
	if patch.Completed != nil {
		columns["completed"] = *patch.Completed
	}
	if patch.Owner != nil {
		columns["owner"] = *patch.Owner
	}

	return columns
}

// paginate applies limit and offset when they are positive.
func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}

		return db
	}
}

// toTaskDomain converts a GORM TaskModel to a domain Task entity.
func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		Owner:       data.Owner,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromTaskDomain converts a domain Task entity to a GORM TaskModel.
func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		Owner:       data.Owner,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
