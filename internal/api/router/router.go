package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"3genpadel/backend/config"
	"3genpadel/backend/internal/api/handler"
	"3genpadel/backend/internal/api/middleware"
	"3genpadel/backend/pkg/jwt"
	"3genpadel/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口额外限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 球员模块
			players := authorized.Group("/players")
			{
				players.GET("", h.Player.ListPlayers)
				players.GET("/:id", h.Player.GetPlayer)
				players.POST("", middleware.RoleAuth("admin"), h.Player.CreatePlayer)
				players.PUT("/:id", middleware.RoleAuth("admin"), h.Player.UpdatePlayer)
				players.DELETE("/:id", middleware.RoleAuth("admin"), h.Player.DeletePlayer)
				players.POST("/:id/recompute-global", middleware.RoleAuth("admin"), h.Player.RecomputeGlobal)
			}

			// 赛段模块
			stages := authorized.Group("/stages")
			{
				stages.GET("", h.Stage.ListStages)
				stages.GET("/active", h.Stage.GetActiveStage)
				stages.GET("/:id", h.Stage.GetStage)
				stages.POST("", middleware.RoleAuth("admin"), h.Stage.CreateStage)
				stages.PUT("/:id", middleware.RoleAuth("admin"), h.Stage.UpdateStage)
				stages.PUT("/:id/activate", middleware.RoleAuth("admin"), h.Stage.ActivateStage)

				// 分区（赛段下挂）
				stages.GET("/:id/divisions", h.Division.ListDivisions)

				// 赛段过渡
				stages.GET("/:id/transition", h.Transition.GetTransition)
				stages.GET("/:id/transition/preview", middleware.RoleAuth("admin"), h.Transition.PreviewTransition)
				stages.POST("/:id/transition/commit", middleware.RoleAuth("admin"), h.Transition.CommitTransition)
			}

			// 分区模块
			divisions := authorized.Group("/divisions")
			{
				divisions.GET("/:id", h.Division.GetDivision)
				divisions.POST("", middleware.RoleAuth("admin"), h.Division.CreateDivision)
				divisions.PUT("/:id", middleware.RoleAuth("admin"), h.Division.UpdateDivision)
				divisions.DELETE("/:id", middleware.RoleAuth("admin"), h.Division.DeleteDivision)
			}

			// 报名模块
			enrollments := authorized.Group("/enrollments")
			{
				enrollments.GET("", h.Enrollment.ListEnrollments)
				enrollments.POST("", middleware.RoleAuth("admin"), h.Enrollment.CreateEnrollment)
				enrollments.PUT("/:id/withdraw", middleware.RoleAuth("admin"), h.Enrollment.WithdrawEnrollment)
			}

			// 比赛模块
			matches := authorized.Group("/matches")
			{
				matches.GET("", h.Match.ListMatches)
				matches.GET("/:id", h.Match.GetMatch)
				matches.POST("", middleware.RoleAuth("admin"), h.Match.CreateMatch)
				matches.PUT("/:id/result", middleware.RoleAuth("admin"), h.Match.RecordResult)
				matches.DELETE("/:id", middleware.RoleAuth("admin"), h.Match.DeleteMatch)
			}

			// 排名模块
			rankings := authorized.Group("/rankings")
			{
				rankings.GET("", h.Ranking.GetStandings)
				rankings.POST("/recompute", middleware.RoleAuth("admin"), h.Ranking.RecomputeRanking)
			}

			// 升降级配置模块
			promotionConfigs := authorized.Group("/promotion-configs")
			{
				promotionConfigs.GET("", h.PromotionConfig.ListConfigs)
				promotionConfigs.PUT("", middleware.RoleAuth("admin"), h.PromotionConfig.UpsertConfig)
				promotionConfigs.DELETE("/:id", middleware.RoleAuth("admin"), h.PromotionConfig.DeleteConfig)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/standings", h.Export.ExportStandings)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
