package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"studyku_backend/internals/features/plans/exclusions/model"
)

const exclusionDDL = `CREATE TABLE plan_exclusions (
	plan_exclusion_id TEXT PRIMARY KEY,
	plan_exclusion_student_id TEXT NOT NULL,
	plan_exclusion_group_id TEXT,
	plan_exclusion_date DATETIME NOT NULL,
	plan_exclusion_kind TEXT NOT NULL DEFAULT 'personal',
	plan_exclusion_reason TEXT,
	plan_exclusion_created_at DATETIME,
	plan_exclusion_updated_at DATETIME,
	plan_exclusion_deleted_at DATETIME
)`

func newTestApp(t *testing.T, studentID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec(exclusionDDL).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", studentID.String())
		return c.Next()
	})
	ctrl := NewExclusionController(db)
	app.Post("/exclusions", ctrl.Create)
	app.Put("/exclusions/:id", ctrl.Update)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateExclusion_PersistsParsedDate(t *testing.T) {
	studentID := uuid.New()
	app, db := newTestApp(t, studentID)

	resp := postJSON(t, app, "/exclusions",
		`{"date":"2026-03-05","kind":"holiday","reason":"national holiday"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var row model.PlanExclusionModel
	require.NoError(t, db.Where("plan_exclusion_student_id = ?", studentID).
		First(&row).Error)
	assert.Equal(t, model.ExclusionKindHoliday, row.PlanExclusionKind)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		row.PlanExclusionDate.UTC())
}

func TestCreateExclusion_RejectsMalformedDate(t *testing.T) {
	studentID := uuid.New()
	app, db := newTestApp(t, studentID)

	for _, date := range []string{"03/05/2026", "2026-3-5", "not-a-date"} {
		resp := postJSON(t, app, "/exclusions",
			`{"date":"`+date+`","kind":"personal"}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, date)
	}

	var count int64
	require.NoError(t, db.Model(&model.PlanExclusionModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateExclusion_RejectsUnknownKind(t *testing.T) {
	app, _ := newTestApp(t, uuid.New())

	resp := postJSON(t, app, "/exclusions",
		`{"date":"2026-03-05","kind":"vacation"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateExclusion_RejectsMalformedDate(t *testing.T) {
	studentID := uuid.New()
	app, db := newTestApp(t, studentID)

	row := model.PlanExclusionModel{
		PlanExclusionStudentID: studentID,
		PlanExclusionDate:      time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PlanExclusionKind:      model.ExclusionKindPersonal,
	}
	require.NoError(t, db.Create(&row).Error)

	req := httptest.NewRequest(fiber.MethodPut,
		"/exclusions/"+row.PlanExclusionID.String(),
		bytes.NewBufferString(`{"date":"05-03-2026"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// stored date untouched
	var kept model.PlanExclusionModel
	require.NoError(t, db.First(&kept, "plan_exclusion_id = ?", row.PlanExclusionID).Error)
	assert.Equal(t, row.PlanExclusionDate.UTC(), kept.PlanExclusionDate.UTC())
}
