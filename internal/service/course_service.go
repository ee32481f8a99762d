package service

import (
	"context"
	"net/http"
	"strings"

	"go-course-tracker/internal/model"
	"go-course-tracker/internal/validation"
	"go-course-tracker/pkg/apierror"
)

// CourseStore is the owner-scoped persistence behind the course service.
// Implementations must treat "not yours" and "does not exist" identically.
type CourseStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Course, error)
	FindByOwner(ctx context.Context, id int64, ownerID int64) (model.Course, error)
	Create(ctx context.Context, c model.Course) (model.Course, error)
	Update(ctx context.Context, c model.Course) (model.Course, error)
	Delete(ctx context.Context, id int64, ownerID int64) error
}

type CourseService struct {
	courses CourseStore
}

func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

func (s *CourseService) List(ctx context.Context, ownerID int64) ([]model.Course, error) {
	return s.courses.ListByOwner(ctx, ownerID)
}

func (s *CourseService) Get(ctx context.Context, id int64, ownerID int64) (model.Course, error) {
	return s.courses.FindByOwner(ctx, id, ownerID)
}

func (s *CourseService) Create(ctx context.Context, ownerID int64, req model.CourseRequest) (model.Course, error) {
	if err := validateCourse(&req); err != nil {
		return model.Course{}, err
	}

	return s.courses.Create(ctx, model.Course{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Credit:      req.Credit,
		Image:       req.Image,
		UserID:      ownerID,
	})
}

func (s *CourseService) Update(ctx context.Context, id int64, ownerID int64, req model.CourseRequest) (model.Course, error) {
	if err := validateCourse(&req); err != nil {
		return model.Course{}, err
	}

	return s.courses.Update(ctx, model.Course{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Credit:      req.Credit,
		Image:       req.Image,
		UserID:      ownerID,
	})
}

func (s *CourseService) Delete(ctx context.Context, id int64, ownerID int64) error {
	return s.courses.Delete(ctx, id, ownerID)
}

func validateCourse(req *model.CourseRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)

	if req.Name == "" || req.Code == "" {
		return apierror.New("BAD_REQUEST", "Course name and code are required", "", http.StatusBadRequest)
	}
	if err := validation.Struct(*req); err != nil {
		return apierror.New("BAD_REQUEST", "Invalid course payload", validation.FirstField(err), http.StatusBadRequest)
	}
	return nil
}
