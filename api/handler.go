package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/healthmitra/insights/errors"
	"github.com/healthmitra/insights/insights"
	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/reminders"
	"github.com/healthmitra/insights/store"
	"github.com/healthmitra/insights/subjects"
)

// Handler is a thin shell over the domain services. All classification
// and orchestration logic lives below it.
type Handler struct {
	observations observations.Repository
	insights     insights.Repository
	generator    insights.Service
	subjects     subjects.Repository
	reminders    reminders.Repository
	logger       *zap.SugaredLogger
}

type Params struct {
	fx.In

	Observations observations.Repository
	Insights     insights.Repository
	Generator    insights.Service
	Subjects     subjects.Repository
	Reminders    reminders.Repository
	Logger       *zap.SugaredLogger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		observations: p.Observations,
		insights:     p.Insights,
		generator:    p.Generator,
		subjects:     p.Subjects,
		reminders:    p.Reminders,
		logger:       p.Logger,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/v1")
	v1.POST("/subjects", h.CreateSubject)
	v1.POST("/subjects/:subjectId/observations", h.CreateObservation)
	v1.POST("/subjects/:subjectId/insights/generate", h.GenerateInsights)
	v1.GET("/subjects/:subjectId/insights", h.ListInsights)
	v1.POST("/subjects/:subjectId/reminders", h.CreateReminder)
	v1.POST("/insights/:insightId/read", h.MarkInsightRead)
	v1.DELETE("/insights/:insightId", h.DeactivateInsight)
}

type CreateSubjectRequest struct {
	UserId     string `json:"userId"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	SmsEnabled bool   `json:"smsEnabled"`
}

func (h *Handler) CreateSubject(c echo.Context) error {
	req := CreateSubjectRequest{}
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest
	}
	if req.UserId == "" {
		return errors.BadRequest
	}

	subject, err := h.subjects.Create(c.Request().Context(), subjects.Subject{
		UserId:     req.UserId,
		FullName:   req.FullName,
		Phone:      req.Phone,
		SmsEnabled: req.SmsEnabled,
	})
	if err == subjects.ErrDuplicate {
		return errors.Duplicate
	} else if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, subject)
}

type CreateObservationRequest struct {
	Parameter observations.Parameter `json:"parameter"`
	Value     *float64               `json:"value,omitempty"`
	Systolic  *float64               `json:"systolic,omitempty"`
	Diastolic *float64               `json:"diastolic,omitempty"`
	Timestamp *time.Time             `json:"timestamp,omitempty"`
}

type CreateObservationResponse struct {
	Observation *observations.Observation `json:"observation"`
	Insights    []*insights.Insight       `json:"insights"`
}

// CreateObservation stores the reading and runs a generation pass over
// it. Insight generation failures do not fail the intake: the reading
// is already stored and the next pass will see it.
func (h *Handler) CreateObservation(c echo.Context) error {
	subjectId := c.Param("subjectId")

	req := CreateObservationRequest{}
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest
	}
	if !req.Parameter.IsKnown() {
		return errors.ConstraintViolation
	}

	observation := observations.Observation{
		SubjectId: subjectId,
		Parameter: req.Parameter,
		Value:     req.Value,
		Systolic:  req.Systolic,
		Diastolic: req.Diastolic,
	}
	if req.Timestamp != nil {
		observation.Timestamp = *req.Timestamp
	}

	created, err := h.observations.Create(c.Request().Context(), observation)
	if err != nil {
		return err
	}

	generated, err := h.generator.GenerateInsights(c.Request().Context(), subjectId, created)
	if err != nil {
		h.logger.Errorw("insight generation failed after observation intake",
			"subjectId", subjectId, "observationId", created.Id, "error", err)
		generated = nil
	}

	return c.JSON(http.StatusCreated, CreateObservationResponse{
		Observation: created,
		Insights:    generated,
	})
}

func (h *Handler) GenerateInsights(c echo.Context) error {
	subjectId := c.Param("subjectId")

	generated, err := h.generator.GenerateInsights(c.Request().Context(), subjectId, nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, generated)
}

func (h *Handler) ListInsights(c echo.Context) error {
	subjectId := c.Param("subjectId")

	filter := &insights.Filter{}
	if raw := c.QueryParam("kind"); raw != "" {
		kind := insights.Kind(raw)
		filter.Kind = &kind
	}

	pagination := store.DefaultPagination()
	if raw := c.QueryParam("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			pagination.Offset = offset
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			pagination.Limit = limit
		}
	}

	result, err := h.insights.List(c.Request().Context(), subjectId, filter, pagination)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) MarkInsightRead(c echo.Context) error {
	err := h.insights.MarkRead(c.Request().Context(), c.Param("insightId"))
	if err == insights.ErrNotFound {
		return errors.NotFound
	} else if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeactivateInsight(c echo.Context) error {
	err := h.insights.Deactivate(c.Request().Context(), c.Param("insightId"))
	if err == insights.ErrNotFound {
		return errors.NotFound
	} else if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

type CreateReminderRequest struct {
	Kind           reminders.Kind `json:"kind"`
	Title          string         `json:"title"`
	MedicationName string         `json:"medicationName"`
	Dosage         string         `json:"dosage"`
	DoctorName     string         `json:"doctorName"`
	Location       string         `json:"location"`
	ScheduledTime  time.Time      `json:"scheduledTime"`
}

func (h *Handler) CreateReminder(c echo.Context) error {
	subjectId := c.Param("subjectId")

	req := CreateReminderRequest{}
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest
	}
	if req.Kind != reminders.KindMedication && req.Kind != reminders.KindAppointment {
		return errors.ConstraintViolation
	}
	if req.ScheduledTime.IsZero() {
		return errors.ConstraintViolation
	}

	reminder, err := h.reminders.Create(c.Request().Context(), reminders.Reminder{
		SubjectId:     subjectId,
		Kind:          req.Kind,
		Title:         req.Title,
		ScheduledTime: req.ScheduledTime,
		Metadata: reminders.Metadata{
			MedicationName: req.MedicationName,
			Dosage:         req.Dosage,
			DoctorName:     req.DoctorName,
			Location:       req.Location,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, reminder)
}
