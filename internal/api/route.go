package api

import (
	"Plaza/internal/api/middleware"
	"Plaza/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		userFollowGroup.Use(middleware.AuthMiddleware())
		{
			userFollowGroup.POST("/follow/:following_id", group.UserFollowHandler.Follow)
			userFollowGroup.DELETE("/follow/:following_id", group.UserFollowHandler.Unfollow)
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/list/:user_id", group.PostHandler.GetPostsByUserID)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/comments/:post_id", group.PostActionHandler.GetComments)

			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(middleware.AuthMiddleware())
			{
				authActionGroup.POST("/likes/:post_id", group.PostActionHandler.LikePost)
				authActionGroup.DELETE("/likes/:post_id", group.PostActionHandler.UnlikePost)
				authActionGroup.POST("/comments/:post_id", group.PostActionHandler.CreateComment)
				authActionGroup.DELETE("/comments/:comment_id", group.PostActionHandler.DeleteComment)
			}
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			// The websocket carries its token in the query string.
			notificationGroup.GET("/stream", group.StreamHandler.Connect)

			authGroup := notificationGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/list", group.NotificationHandler.GetAll)
				authGroup.GET("/unread", group.NotificationHandler.GetUnread)
				authGroup.GET("/unread/count", group.NotificationHandler.CountUnread)
				authGroup.POST("/read/:notification_id", group.NotificationHandler.MarkRead)
				authGroup.POST("/read-all", group.NotificationHandler.MarkAllRead)
				authGroup.DELETE("/delete/:notification_id", group.NotificationHandler.Delete)
				authGroup.POST("/sweep", group.NotificationHandler.SweepOld)
			}
		}

		reviewGroup := apiGroup.Group("/review")
		reviewGroup.Use(middleware.AuthMiddleware())
		{
			reviewGroup.GET("/pending", group.ReviewHandler.ListPending)
			reviewGroup.POST("/:item_id/resolve", group.ReviewHandler.Resolve)
		}
	}

	return r
}
