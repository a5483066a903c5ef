package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/models"
	"github.com/example/lokamart/internal/utils"
)

const (
	reportKindProblem = "problem"
	reportKindUser    = "user"
)

// ReportHandler manages problem reports and user-on-user reports.
type ReportHandler struct {
	db *gorm.DB
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type createProblemReportRequest struct {
	Header   string  `json:"report_header" validate:"required"`
	Content  string  `json:"report_content" validate:"required"`
	ImageURL *string `json:"image_url"`
}

// CreateProblemReport files a report about the platform.
func (h *ReportHandler) CreateProblemReport(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createProblemReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	report := models.ProblemReport{
		UserID:   userID,
		Header:   req.Header,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := h.db.Create(&report).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": report})
}

type createUserReportRequest struct {
	ReportedUserID string  `json:"reported_user_id" validate:"required,uuid"`
	Header         string  `json:"report_header" validate:"required"`
	Content        string  `json:"report_content" validate:"required"`
	ImageURL       *string `json:"image_url"`
}

// CreateUserReport files a report against another user.
func (h *ReportHandler) CreateUserReport(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createUserReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	reportedID, err := uuid.Parse(req.ReportedUserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid reported user id")
	}

	var reported models.User
	if err := h.db.First(&reported, "id = ?", reportedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Reported user not found")
		}
		return err
	}

	report := models.UserReport{
		ReporterID: userID,
		ReportedID: reportedID,
		Header:     req.Header,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
	}

	if err := h.db.Create(&report).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": report})
}

// ListReports returns all records of one kind. Reporter and reported display
// fields are joined live so display-name changes show immediately.
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	switch c.Params("type") {
	case reportKindProblem:
		var total int64
		if err := h.db.Model(&models.ProblemReport{}).Count(&total).Error; err != nil {
			return err
		}

		var reports []models.ProblemReport
		if err := h.db.Preload("User").
			Order("created_at desc").
			Limit(pg.Limit).Offset(pg.Offset).
			Find(&reports).Error; err != nil {
			return err
		}

		data := make([]fiber.Map, 0, len(reports))
		for i := range reports {
			data = append(data, problemReportView(&reports[i]))
		}
		return c.JSON(listResponse(data, pg, total))

	case reportKindUser:
		var total int64
		if err := h.db.Model(&models.UserReport{}).Count(&total).Error; err != nil {
			return err
		}

		var reports []models.UserReport
		if err := h.db.Preload("Reporter").Preload("Reported").
			Order("created_at desc").
			Limit(pg.Limit).Offset(pg.Offset).
			Find(&reports).Error; err != nil {
			return err
		}

		data := make([]fiber.Map, 0, len(reports))
		for i := range reports {
			data = append(data, userReportView(&reports[i]))
		}
		return c.JSON(listResponse(data, pg, total))
	}

	return fiber.NewError(fiber.StatusBadRequest, "unknown report type")
}

// GetReport returns one record with live display fields.
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	switch c.Params("type") {
	case reportKindProblem:
		var report models.ProblemReport
		if err := h.db.Preload("User").First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Report not found")
			}
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": problemReportView(&report)})

	case reportKindUser:
		var report models.UserReport
		if err := h.db.Preload("Reporter").Preload("Reported").First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Report not found")
			}
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": userReportView(&report)})
	}

	return fiber.NewError(fiber.StatusBadRequest, "unknown report type")
}

type toggleReadRequest struct {
	IsRead *bool `json:"is_read"`
}

// ToggleRead sets the read flag to the requested value. Setting the current
// value again is a no-op success, not an error.
func (h *ReportHandler) ToggleRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req toggleReadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.IsRead == nil {
		return fiber.NewError(fiber.StatusBadRequest, "is_read is required")
	}

	switch c.Params("type") {
	case reportKindProblem:
		var report models.ProblemReport
		if err := h.db.Preload("User").First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Report not found")
			}
			return err
		}

		// Update by key, not through the loaded struct: the struct carries a
		// preloaded association and gorm would save it along with the flag.
		if err := h.db.Model(&models.ProblemReport{}).
			Where("id = ?", id).
			Update("is_read", *req.IsRead).Error; err != nil {
			return err
		}
		report.IsRead = *req.IsRead
		return c.JSON(fiber.Map{"success": true, "data": problemReportView(&report)})

	case reportKindUser:
		var report models.UserReport
		if err := h.db.Preload("Reporter").Preload("Reported").First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Report not found")
			}
			return err
		}

		if err := h.db.Model(&models.UserReport{}).
			Where("id = ?", id).
			Update("is_read", *req.IsRead).Error; err != nil {
			return err
		}
		report.IsRead = *req.IsRead
		return c.JSON(fiber.Map{"success": true, "data": userReportView(&report)})
	}

	return fiber.NewError(fiber.StatusBadRequest, "unknown report type")
}

// DeleteReport removes a record permanently. There is no soft delete.
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	switch c.Params("type") {
	case reportKindProblem:
		res := h.db.Delete(&models.ProblemReport{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Report not found")
		}
		return c.JSON(fiber.Map{"success": true, "message": "report deleted"})

	case reportKindUser:
		res := h.db.Delete(&models.UserReport{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Report not found")
		}
		return c.JSON(fiber.Map{"success": true, "message": "report deleted"})
	}

	return fiber.NewError(fiber.StatusBadRequest, "unknown report type")
}

func problemReportView(r *models.ProblemReport) fiber.Map {
	return fiber.Map{
		"id":             r.ID,
		"report_header":  r.Header,
		"report_content": r.Content,
		"image_url":      r.ImageURL,
		"is_read":        r.IsRead,
		"created_at":     r.CreatedAt,
		"reporter_id":    r.UserID,
		"reporter_name":  r.User.FullName,
		"reporter_email": r.User.Email,
	}
}

func userReportView(r *models.UserReport) fiber.Map {
	return fiber.Map{
		"id":             r.ID,
		"report_header":  r.Header,
		"report_content": r.Content,
		"image_url":      r.ImageURL,
		"is_read":        r.IsRead,
		"created_at":     r.CreatedAt,
		"reporter_id":    r.ReporterID,
		"reporter_name":  r.Reporter.FullName,
		"reporter_email": r.Reporter.Email,
		"reported_id":    r.ReportedID,
		"reported_name":  r.Reported.FullName,
		"reported_email": r.Reported.Email,
	}
}

func listResponse(data []fiber.Map, pg utils.Pagination, total int64) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	}
}
