package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/msa-adp-api/internal/dto"
	"github.com/noah-isme/msa-adp-api/internal/models"
	"github.com/noah-isme/msa-adp-api/internal/repository"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

type courseTypeRepository interface {
	List(ctx context.Context, filter models.CourseTypeFilter) ([]models.CourseType, int, error)
	FindByID(ctx context.Context, orgID, id string) (*models.CourseType, error)
	FindByName(ctx context.Context, orgID, name string) (*models.CourseType, error)
	Create(ctx context.Context, item *models.CourseType) error
	Update(ctx context.Context, item *models.CourseType) error
	SetActive(ctx context.Context, orgID, id string, active bool) error
	Options(ctx context.Context, orgID string) ([]models.CourseTypeOption, error)
}

type courseCodeRepository interface {
	List(ctx context.Context, filter models.CourseCodeFilter) ([]models.CourseCode, int, error)
	ListAll(ctx context.Context, orgID string) ([]models.CourseCode, error)
	FindByID(ctx context.Context, orgID, id string) (*models.CourseCode, error)
	FindByCode(ctx context.Context, orgID, code string) (*models.CourseCode, error)
	Create(ctx context.Context, item *models.CourseCode) error
	Update(ctx context.Context, item *models.CourseCode) error
	SetActive(ctx context.Context, orgID, id string, active bool) error
	Options(ctx context.Context, orgID string) ([]models.CourseCodeOption, error)
}

type scheduleSlotRepository interface {
	List(ctx context.Context, filter models.ScheduleSlotFilter) ([]models.ScheduleSlot, int, error)
	ListActive(ctx context.Context, orgID string) ([]models.ScheduleSlot, error)
	FindByID(ctx context.Context, orgID, id string) (*models.ScheduleSlot, error)
	Create(ctx context.Context, slot *models.ScheduleSlot) error
	Update(ctx context.Context, slot *models.ScheduleSlot) error
	SetActive(ctx context.Context, orgID, id string, active bool) error
	Delete(ctx context.Context, orgID, id string) error
}

type catalogTeacherRepository interface {
	MapByID(ctx context.Context, orgID string) (map[string]models.Teacher, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CatalogService manages course types, course codes and recurring schedule
// slots. Every write invalidates cached dropdown options and every cached
// timetable view for the org, since any of them may render stale data.
type CatalogService struct {
	types     courseTypeRepository
	codes     courseCodeRepository
	slots     scheduleSlotRepository
	teachers  catalogTeacherRepository
	cache     catalogCache
	validator *validator.Validate
	logger    *zap.Logger
	optionTTL time.Duration
}

// NewCatalogService constructs the service.
func NewCatalogService(types courseTypeRepository, codes courseCodeRepository, slots scheduleSlotRepository, teachers catalogTeacherRepository, cache catalogCache, validate *validator.Validate, logger *zap.Logger, optionTTL time.Duration) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if optionTTL <= 0 {
		optionTTL = 10 * time.Minute
	}
	return &CatalogService{
		types:     types,
		codes:     codes,
		slots:     slots,
		teachers:  teachers,
		cache:     cache,
		validator: validate,
		logger:    logger,
		optionTTL: optionTTL,
	}
}

func (s *CatalogService) invalidate(ctx context.Context, orgID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, repository.CatalogOptionsKey(orgID)); err != nil {
		s.logger.Warn("failed to drop catalog options cache", zap.String("org_id", orgID), zap.Error(err))
	}
	if err := s.cache.DeleteByPattern(ctx, repository.TimetableViewPattern(orgID)); err != nil {
		s.logger.Warn("failed to drop timetable view cache", zap.String("org_id", orgID), zap.Error(err))
	}
}

// emptyToNil normalizes optional text fields so a blank string clears the
// column instead of storing "".
func emptyToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ListCourseTypes returns course types for the org.
func (s *CatalogService) ListCourseTypes(ctx context.Context, filter models.CourseTypeFilter) ([]models.CourseType, *models.Pagination, error) {
	items, total, err := s.types.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course types")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// GetCourseType returns one course type.
func (s *CatalogService) GetCourseType(ctx context.Context, orgID, id string) (*models.CourseType, error) {
	item, err := s.types.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course type")
	}
	if item == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course type not found")
	}
	return item, nil
}

// CreateCourseType registers a new course type.
func (s *CatalogService) CreateCourseType(ctx context.Context, orgID string, req dto.CreateCourseTypeRequest) (*models.CourseType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.Capacity < 1 {
		return nil, appErrors.Clone(appErrors.ErrInvalidCapacity, "")
	}
	if req.MinAge != nil && req.MaxAge != nil && *req.MaxAge < *req.MinAge {
		return nil, appErrors.Clone(appErrors.ErrValidation, "maxAge must be at least minAge")
	}

	existing, err := s.types.FindByName(ctx, orgID, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course type name")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course type name already exists")
	}

	packages, err := json.Marshal(req.Packages)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid packages payload")
	}
	bundles, err := json.Marshal(req.TrialBundles)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trial bundles payload")
	}

	item := &models.CourseType{
		OrgID:           orgID,
		Name:            strings.TrimSpace(req.Name),
		MinAge:          req.MinAge,
		MaxAge:          req.MaxAge,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		DifficultyTier:  req.DifficultyTier,
		PricingModel:    req.PricingModel,
		TrialLimit:      req.TrialLimit,
		Packages:        packages,
		TrialBundles:    bundles,
		Active:          true,
		DisplayOrder:    req.DisplayOrder,
	}
	if err := s.types.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course type")
	}
	s.invalidate(ctx, orgID)
	return item, nil
}

// UpdateCourseType applies a partial update. Nil fields keep their stored
// values.
func (s *CatalogService) UpdateCourseType(ctx context.Context, orgID, id string, req dto.UpdateCourseTypeRequest) (*models.CourseType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	item, err := s.GetCourseType(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, item.Name) {
			existing, err := s.types.FindByName(ctx, orgID, name)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course type name")
			}
			if existing != nil && existing.ID != item.ID {
				return nil, appErrors.Clone(appErrors.ErrConflict, "course type name already exists")
			}
		}
		item.Name = name
	}
	if req.MinAge != nil {
		item.MinAge = req.MinAge
	}
	if req.MaxAge != nil {
		item.MaxAge = req.MaxAge
	}
	if item.MinAge != nil && item.MaxAge != nil && *item.MaxAge < *item.MinAge {
		return nil, appErrors.Clone(appErrors.ErrValidation, "maxAge must be at least minAge")
	}
	if req.DurationMinutes != nil {
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, appErrors.Clone(appErrors.ErrInvalidCapacity, "")
		}
		item.Capacity = *req.Capacity
	}
	if req.DifficultyTier != nil {
		item.DifficultyTier = strings.TrimSpace(*req.DifficultyTier)
	}
	if req.PricingModel != nil {
		item.PricingModel = strings.TrimSpace(*req.PricingModel)
	}
	if req.TrialLimit != nil {
		item.TrialLimit = *req.TrialLimit
	}
	if req.Packages != nil {
		packages, err := json.Marshal(req.Packages)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid packages payload")
		}
		item.Packages = packages
	}
	if req.TrialBundles != nil {
		bundles, err := json.Marshal(req.TrialBundles)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trial bundles payload")
		}
		item.TrialBundles = bundles
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := s.types.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course type")
	}
	s.invalidate(ctx, orgID)
	return item, nil
}

// ToggleCourseTypeActive flips the active flag. Existing course codes under
// the type keep running; deactivation only hides the type from new bookings.
func (s *CatalogService) ToggleCourseTypeActive(ctx context.Context, orgID, id string, active bool) error {
	if err := s.types.SetActive(ctx, orgID, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course type not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle course type")
	}
	s.invalidate(ctx, orgID)
	return nil
}

// ensureCourseTypeRef rejects references to missing or inactive course types.
func (s *CatalogService) ensureCourseTypeRef(ctx context.Context, orgID string, courseTypeID *string) error {
	if courseTypeID == nil {
		return nil
	}
	courseType, err := s.types.FindByID(ctx, orgID, *courseTypeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course type reference")
	}
	if courseType == nil || !courseType.Active {
		return appErrors.Clone(appErrors.ErrDanglingReference, "course type not found or inactive")
	}
	return nil
}

// ensureTeacherRef rejects references to missing or inactive teachers.
func (s *CatalogService) ensureTeacherRef(ctx context.Context, orgID string, teacherID *string) error {
	if teacherID == nil {
		return nil
	}
	roster, err := s.teachers.MapByID(ctx, orgID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher roster")
	}
	teacher, ok := roster[*teacherID]
	if !ok || !teacher.Active {
		return appErrors.Clone(appErrors.ErrDanglingReference, "teacher not found or inactive")
	}
	return nil
}

// ensureCourseCodeRef rejects references to missing or inactive course codes.
func (s *CatalogService) ensureCourseCodeRef(ctx context.Context, orgID string, courseCodeID *string) error {
	if courseCodeID == nil {
		return nil
	}
	code, err := s.codes.FindByID(ctx, orgID, *courseCodeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code reference")
	}
	if code == nil || !code.Active {
		return appErrors.Clone(appErrors.ErrDanglingReference, "course code not found or inactive")
	}
	return nil
}

// ListCourseCodes returns course codes for the org.
func (s *CatalogService) ListCourseCodes(ctx context.Context, filter models.CourseCodeFilter) ([]models.CourseCode, *models.Pagination, error) {
	items, total, err := s.codes.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course codes")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// GetCourseCode returns one course code.
func (s *CatalogService) GetCourseCode(ctx context.Context, orgID, id string) (*models.CourseCode, error) {
	item, err := s.codes.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course code")
	}
	if item == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course code not found")
	}
	return item, nil
}

// CreateCourseCode registers a new course code. The code string must be
// unique within the org and every reference must point at a live record.
func (s *CatalogService) CreateCourseCode(ctx context.Context, orgID string, req dto.CreateCourseCodeRequest) (*models.CourseCode, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.Capacity < 1 {
		return nil, appErrors.Clone(appErrors.ErrInvalidCapacity, "")
	}

	code := strings.TrimSpace(req.Code)
	existing, err := s.codes.FindByCode(ctx, orgID, code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCode, "")
	}

	if err := s.ensureCourseTypeRef(ctx, orgID, emptyToNil(req.CourseTypeID)); err != nil {
		return nil, err
	}
	if err := s.ensureTeacherRef(ctx, orgID, emptyToNil(req.TeacherID)); err != nil {
		return nil, err
	}

	item := &models.CourseCode{
		OrgID:        orgID,
		CourseTypeID: emptyToNil(req.CourseTypeID),
		Code:         code,
		Name:         strings.TrimSpace(req.Name),
		Description:  emptyToNil(req.Description),
		Capacity:     req.Capacity,
		TeacherID:    emptyToNil(req.TeacherID),
		Room:         emptyToNil(req.Room),
		Active:       true,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.codes.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course code")
	}
	s.invalidate(ctx, orgID)
	return item, nil
}

// UpdateCourseCode applies a partial update. Blank optional strings clear
// the stored value; nil fields keep it.
func (s *CatalogService) UpdateCourseCode(ctx context.Context, orgID, id string, req dto.UpdateCourseCodeRequest) (*models.CourseCode, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	item, err := s.GetCourseCode(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if !strings.EqualFold(code, item.Code) {
			existing, err := s.codes.FindByCode(ctx, orgID, code)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
			}
			if existing != nil && existing.ID != item.ID {
				return nil, appErrors.Clone(appErrors.ErrDuplicateCode, "")
			}
		}
		item.Code = code
	}
	if req.CourseTypeID != nil {
		ref := emptyToNil(req.CourseTypeID)
		if err := s.ensureCourseTypeRef(ctx, orgID, ref); err != nil {
			return nil, err
		}
		item.CourseTypeID = ref
	}
	if req.TeacherID != nil {
		ref := emptyToNil(req.TeacherID)
		if err := s.ensureTeacherRef(ctx, orgID, ref); err != nil {
			return nil, err
		}
		item.TeacherID = ref
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = emptyToNil(req.Description)
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, appErrors.Clone(appErrors.ErrInvalidCapacity, "")
		}
		item.Capacity = *req.Capacity
	}
	if req.Room != nil {
		item.Room = emptyToNil(req.Room)
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := s.codes.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course code")
	}
	s.invalidate(ctx, orgID)
	return item, nil
}

// ToggleCourseCodeActive flips the active flag.
func (s *CatalogService) ToggleCourseCodeActive(ctx context.Context, orgID, id string, active bool) error {
	if err := s.codes.SetActive(ctx, orgID, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course code not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle course code")
	}
	s.invalidate(ctx, orgID)
	return nil
}

// ListScheduleSlots returns slots for the org.
func (s *CatalogService) ListScheduleSlots(ctx context.Context, filter models.ScheduleSlotFilter) ([]models.ScheduleSlot, *models.Pagination, error) {
	items, total, err := s.slots.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule slots")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// GetScheduleSlot returns one slot.
func (s *CatalogService) GetScheduleSlot(ctx context.Context, orgID, id string) (*models.ScheduleSlot, error) {
	slot, err := s.slots.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule slot")
	}
	if slot == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule slot not found")
	}
	return slot, nil
}

func (s *CatalogService) slotFromCreate(orgID string, req dto.CreateScheduleSlotRequest) (*models.ScheduleSlot, error) {
	weekday := models.Weekday(req.Weekday)
	if !weekday.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidWeekday, "")
	}
	start, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidTime.Code, appErrors.ErrInvalidTime.Status, appErrors.ErrInvalidTime.Message)
	}
	if req.Capacity < 1 {
		return nil, appErrors.Clone(appErrors.ErrInvalidCapacity, "")
	}
	return &models.ScheduleSlot{
		OrgID:           orgID,
		Weekday:         weekday,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		CourseCodeID:    emptyToNil(req.CourseCodeID),
		Section:         emptyToNil(req.Section),
		Room:            emptyToNil(req.Room),
		Primary:         req.Primary,
		Active:          true,
	}, nil
}

// validateSlotPlacement re-reads slot state immediately before commit so the
// conflict check always runs against fresh data.
func (s *CatalogService) validateSlotPlacement(ctx context.Context, orgID string, candidate models.ScheduleSlot) error {
	existing, err := s.slots.ListActive(ctx, orgID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slots for validation")
	}
	codes, err := s.codes.ListAll(ctx, orgID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course codes for validation")
	}
	codeByID := make(map[string]models.CourseCode, len(codes))
	for _, code := range codes {
		codeByID[code.ID] = code
	}
	if violations := ValidateSlot(candidate, existing, codeByID); len(violations) > 0 {
		return &models.SlotValidationError{Violations: violations}
	}
	return nil
}

// CreateScheduleSlot registers a new recurring slot after conflict checks.
func (s *CatalogService) CreateScheduleSlot(ctx context.Context, orgID string, req dto.CreateScheduleSlotRequest) (*models.ScheduleSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	slot, err := s.slotFromCreate(orgID, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCourseCodeRef(ctx, orgID, slot.CourseCodeID); err != nil {
		return nil, err
	}
	if err := s.validateSlotPlacement(ctx, orgID, *slot); err != nil {
		return nil, err
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule slot")
	}
	s.invalidate(ctx, orgID)
	return slot, nil
}

// UpdateScheduleSlot applies a partial update and re-validates placement.
func (s *CatalogService) UpdateScheduleSlot(ctx context.Context, orgID, id string, req dto.UpdateScheduleSlotRequest) (*models.ScheduleSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	slot, err := s.GetScheduleSlot(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Weekday != nil {
		weekday := models.Weekday(*req.Weekday)
		if !weekday.Valid() {
			return nil, appErrors.Clone(appErrors.ErrInvalidWeekday, "")
		}
		slot.Weekday = weekday
	}
	if req.StartTime != nil {
		start, err := models.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidTime.Code, appErrors.ErrInvalidTime.Status, appErrors.ErrInvalidTime.Message)
		}
		slot.StartTime = start
	}
	if req.DurationMinutes != nil {
		slot.DurationMinutes = *req.DurationMinutes
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, appErrors.Clone(appErrors.ErrInvalidCapacity, "")
		}
		slot.Capacity = *req.Capacity
	}
	if req.CourseCodeID != nil {
		ref := emptyToNil(req.CourseCodeID)
		if err := s.ensureCourseCodeRef(ctx, orgID, ref); err != nil {
			return nil, err
		}
		slot.CourseCodeID = ref
	}
	if req.Section != nil {
		slot.Section = emptyToNil(req.Section)
	}
	if req.Room != nil {
		slot.Room = emptyToNil(req.Room)
	}
	if req.Primary != nil {
		slot.Primary = *req.Primary
	}

	if err := s.validateSlotPlacement(ctx, orgID, *slot); err != nil {
		return nil, err
	}
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule slot")
	}
	s.invalidate(ctx, orgID)
	return slot, nil
}

// ToggleScheduleSlotActive flips the active flag.
func (s *CatalogService) ToggleScheduleSlotActive(ctx context.Context, orgID, id string, active bool) error {
	if err := s.slots.SetActive(ctx, orgID, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle schedule slot")
	}
	s.invalidate(ctx, orgID)
	return nil
}

// DeleteScheduleSlot removes a slot.
func (s *CatalogService) DeleteScheduleSlot(ctx context.Context, orgID, id string) error {
	if _, err := s.GetScheduleSlot(ctx, orgID, id); err != nil {
		return err
	}
	if err := s.slots.Delete(ctx, orgID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule slot")
	}
	s.invalidate(ctx, orgID)
	return nil
}

// Options serves the cached dropdown payload for catalog forms.
func (s *CatalogService) Options(ctx context.Context, orgID string) (*dto.CatalogOptionsResponse, error) {
	key := repository.CatalogOptionsKey(orgID)
	if s.cache != nil {
		var cached dto.CatalogOptionsResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	typeOptions, err := s.types.Options(ctx, orgID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course type options")
	}
	codeOptions, err := s.codes.Options(ctx, orgID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course code options")
	}

	options := &dto.CatalogOptionsResponse{CourseTypes: typeOptions, CourseCodes: codeOptions}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, options, s.optionTTL); err != nil {
			s.logger.Warn("failed to cache catalog options", zap.String("org_id", orgID), zap.Error(err))
		}
	}
	return options, nil
}
