package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"revreview/backend/catalog"
	"revreview/backend/config"
	"revreview/backend/mastery"
	"revreview/backend/models"
	"revreview/backend/storage"
	"revreview/backend/utils"
)

// AnalyticsController serves the teacher dashboard, the per-class xlsx
// report and the daily platform rollup.
type AnalyticsController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Store   *storage.Store
	Catalog *catalog.Catalog
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config, store *storage.Store, cat *catalog.Catalog) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg, Store: store, Catalog: cat}
}

// studentReport is one dashboard row.
type studentReport struct {
	UserID       uint              `json:"userId"`
	Username     string            `json:"username"`
	ClassPeriod  string            `json:"classPeriod"`
	Mastery      mastery.Breakdown `json:"mastery"`
	Streak       int               `json:"streak"`
	TotalStudyMs int64             `json:"totalStudyMs"`
	BadgesEarned int               `json:"badgesEarned"`
}

func (ac *AnalyticsController) buildReport(u models.User) studentReport {
	return studentReport{
		UserID:      u.ID,
		Username:    u.Username,
		ClassPeriod: u.ClassPeriod,
		Mastery: mastery.Compute(
			len(ac.Store.VocabMastery(u.ID)),
			ac.Catalog.TotalVocab(),
			ac.Store.PracticeProgress(u.ID),
			ac.Store.TestHistory(u.ID),
		),
		Streak:       ac.Store.Streak(u.ID).Current,
		TotalStudyMs: ac.Store.TotalStudyTime(u.ID),
		BadgesEarned: len(ac.Store.EarnedBadges(u.ID)),
	}
}

func (ac *AnalyticsController) students(classPeriod string) ([]models.User, error) {
	query := ac.DB.Where("role = ?", "student")
	if classPeriod != "" {
		query = query.Where("class_period = ?", classPeriod)
	}
	var users []models.User
	err := query.Order("username").Find(&users).Error
	return users, err
}

// Dashboard godoc
// @Summary Per-student progress for the teacher dashboard
// @Tags analytics
// @Produce json
// @Param classPeriod query string false "Filter by class period"
// @Success 200 {object} utils.SuccessResponse
// @Router /analytics/dashboard [get]
func (ac *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	users, err := ac.students(c.Query("classPeriod"))
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch students")
	}

	reports := make([]studentReport, len(users))
	for i, u := range users {
		reports[i] = ac.buildReport(u)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"students": reports,
		"total":    len(reports),
	})
}

// Student godoc
// @Summary One student's full progress
// @Tags analytics
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /analytics/students/{id} [get]
func (ac *AnalyticsController) Student(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid student ID")
	}

	var user models.User
	if err := ac.DB.Where("role = ?", "student").First(&user, id).Error; err != nil {
		return utils.NotFound(c, "Student not found")
	}

	report := ac.buildReport(user)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"student":  report,
		"tests":    ac.Store.TestHistory(user.ID),
		"timeline": ac.Store.Timeline(user.ID),
	})
}

// ReportXLSX godoc
// @Summary Download the class progress report as a spreadsheet
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param classPeriod query string false "Filter by class period"
// @Success 200 {file} binary
// @Router /analytics/report.xlsx [get]
func (ac *AnalyticsController) ReportXLSX(c *fiber.Ctx) error {
	users, err := ac.students(c.Query("classPeriod"))
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch students")
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Progress"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Student", "Class Period", "Overall %", "Level",
		"Vocabulary %", "Practice %", "Tests Taken", "Test Average %",
		"Study Time (min)", "Current Streak", "Badges Earned",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, u := range users {
		r := ac.buildReport(u)
		values := []interface{}{
			r.Username, r.ClassPeriod, r.Mastery.Overall, r.Mastery.TierLabel,
			r.Mastery.VocabPercent, r.Mastery.PracticePercent,
			r.Mastery.TestsTaken, r.Mastery.TestAverage,
			r.TotalStudyMs / 60000, r.Streak, r.BadgesEarned,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return utils.InternalServerError(c, "Failed to build spreadsheet")
	}

	filename := fmt.Sprintf("class-progress-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// History godoc
// @Summary Daily platform rollups, newest first
// @Tags analytics
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /analytics/history [get]
func (ac *AnalyticsController) History(c *fiber.Ctx) error {
	var rollups []models.PlatformAnalytics
	if err := ac.DB.Order("date desc").Limit(90).Find(&rollups).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch rollups")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"rollups": rollups})
}

// ComputeDailyRollup aggregates platform-wide figures and upserts today's
// row. Called by the scheduler every night and once at startup.
func (ac *AnalyticsController) ComputeDailyRollup(now time.Time) error {
	users, err := ac.students("")
	if err != nil {
		return err
	}

	var activeUsers int64
	since := now.Add(-24 * time.Hour)
	if err := ac.DB.Model(&models.LoginHistory{}).
		Where("login_time >= ?", since).
		Distinct("user_id").Count(&activeUsers).Error; err != nil {
		return err
	}

	testsTaken := 0
	var proficiencySum float64
	for _, u := range users {
		r := ac.buildReport(u)
		testsTaken += r.Mastery.TestsTaken
		proficiencySum += r.Mastery.Overall
	}
	avg := 0.0
	if len(users) > 0 {
		avg = proficiencySum / float64(len(users))
	}

	rollup := models.PlatformAnalytics{
		TotalUsers:     len(users),
		ActiveUsers:    int(activeUsers),
		TestsTaken:     testsTaken,
		AvgProficiency: avg,
		Date:           now.Format("2006-01-02"),
	}
	return ac.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_users", "active_users", "tests_taken", "avg_proficiency", "updated_at"}),
	}).Create(&rollup).Error
}
