package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-planner/backend/config"
	"campus-planner/backend/internal/api/handler"
	"campus-planner/backend/internal/api/middleware"
	"campus-planner/backend/pkg/jwt"
	"campus-planner/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎；db 与 rdb 可为 nil（健康检查时跳过对应探测）
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db, rdb))

	admin := middleware.RoleAuth(middleware.RoleAdmin)
	staff := middleware.RoleAuth(middleware.RoleAdmin, middleware.RoleAdvisor)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.GET("/health", healthCheck(db, rdb))

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		// 课程目录
		courses := authorized.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:id", h.Course.GetCourse)
			courses.POST("", admin, h.Course.CreateCourse)
			courses.PUT("/:id", admin, h.Course.UpdateCourse)
			courses.DELETE("/:id", admin, h.Course.DeleteCourse)
			courses.GET("/:id/prerequisites", h.Course.ListPrerequisites)
			courses.PUT("/:id/prerequisites", admin, h.Course.SetPrerequisites)
		}
		authorized.GET("/prerequisites/validate", staff, h.Planning.ValidatePrerequisites)

		// 学期与教学日
		semesters := authorized.Group("/semesters")
		{
			semesters.GET("", h.Semester.ListSemesters)
			semesters.GET("/:id", h.Semester.GetSemester)
			semesters.POST("", admin, h.Semester.CreateSemester)
			semesters.PUT("/:id", admin, h.Semester.UpdateSemester)
			semesters.DELETE("/:id", admin, h.Semester.DeleteSemester)
			semesters.GET("/:id/days", h.Schedule.ListDays)
			semesters.POST("/:id/days", admin, h.Schedule.CreateDay)
		}

		// 教学班
		days := authorized.Group("/semester-days")
		{
			days.DELETE("/:id", admin, h.Schedule.DeleteDay)
			days.GET("/:id/sections", h.Schedule.ListSections)
			days.POST("/:id/sections", admin, h.Schedule.CreateSection)
		}
		sections := authorized.Group("/sections")
		{
			sections.PUT("/:id", admin, h.Schedule.UpdateSection)
			sections.DELETE("/:id", admin, h.Schedule.DeleteSection)
		}

		// 学业规划（学生本人校验在 Handler 层）
		plan := authorized.Group("/planning")
		{
			plan.GET("/students/:id/eligible-courses", h.Planning.EligibleCourses)
			plan.GET("/students/:id/plans", h.Planning.ListPlans)
			plan.POST("/validate", h.Planning.ValidatePlan)
			plan.POST("/semester-plan",
				middleware.RateLimit(rdb, cfg.Planning.PlanRateLimit, cfg.Planning.PlanRateWindow, logger),
				h.Planning.GenerateSemesterPlan)
			plan.GET("/plans/:id", h.Planning.GetPlan)
		}

		// 学生成绩与课程状态
		students := authorized.Group("/students")
		{
			students.GET("/:id/summary", h.Transcript.GetSummary)
			students.PUT("/:id/statuses", staff, h.Transcript.UpsertStatuses)
		}

		// 导出
		export := authorized.Group("/export")
		{
			export.GET("/plans/:id/xlsx", h.Export.ExportPlanExcel)
			export.GET("/plans/:id/ics", h.Export.ExportPlanICS)
		}
	}

	return r
}

// healthCheck 探测数据库与 Redis；Redis 不可用只标记为 degraded
func healthCheck(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok"}
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
			status["database"] = "up"
		}
		if rdb != nil {
			if err := rdb.Ping(ctx); err != nil {
				status["status"] = "degraded"
				status["redis"] = "down"
			} else {
				status["redis"] = "up"
			}
		}
		c.JSON(http.StatusOK, status)
	}
}
