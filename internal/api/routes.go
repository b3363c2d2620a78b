package api

import (
	"net/http"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full HTTP surface. Paths are kept flat (no
// version prefix) for compatibility with the existing dashboard clients.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	memberService service.MemberService,
	programService service.ProgramService,
	videoService service.VideoService,
	tipsService service.TipsService,
	statsService service.StatsService,
) {
	authHandler := NewAuthHandler(authService)
	memberHandler := NewMemberHandler(memberService)
	programHandler := NewProgramHandler(programService)
	videoHandler := NewVideoHandler(videoService)
	tipsHandler := NewTipsHandler(tipsService)
	statsHandler := NewStatsHandler(statsService)

	authMW := AuthMiddleware(jwtSecret)
	coachMW := RoleMiddleware(domain.RoleCoach)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	router.GET("/me", authMW, func(c *gin.Context) {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
			return
		}
		role, _ := c.Get(ContextUserRoleKey)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})

	// --- Members ---
	router.POST("/members", memberHandler.CreateMember)
	router.GET("/members", memberHandler.ListMembers)
	router.GET("/members/search/:email", memberHandler.SearchMember)
	router.DELETE("/members/:id", authMW, coachMW, memberHandler.DeleteMember)
	router.POST("/members/:id/renew", memberHandler.RenewMember)

	// --- Program requests and programs ---
	router.POST("/members/:id/request-program", programHandler.RequestProgram)
	router.GET("/members/:id/request", programHandler.GetRequest)
	router.POST("/members/:id/create-program", authMW, coachMW, programHandler.CreateProgram)
	router.GET("/members/:id/program", programHandler.GetProgram)
	router.GET("/members/:id/download", programHandler.DownloadProgram)

	// --- Gamification ---
	router.POST("/members/:id/complete-workout", statsHandler.CompleteWorkout)
	router.GET("/members/:id/stats", statsHandler.GetStats)
	router.GET("/leaderboard", statsHandler.Leaderboard)

	// --- Exercise video library ---
	router.GET("/exercises", videoHandler.ListVideos)
	router.POST("/exercises", authMW, coachMW, videoHandler.CreateVideo)
	router.DELETE("/exercises/:id", authMW, coachMW, videoHandler.DeleteVideo)

	// --- AI tips ---
	router.POST("/ai/tips", tipsHandler.GetTips)
}
