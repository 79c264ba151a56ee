package api

import "Plaza/internal/api/handler"

// HandlersGroup bundles every initialized handler instance.
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	PostHandler         *handler.PostHandler
	PostActionHandler   *handler.PostActionHandler
	UserFollowHandler   *handler.UserFollowHandler
	NotificationHandler *handler.NotificationHandler
	ReviewHandler       *handler.ReviewHandler
	StreamHandler       *handler.StreamHandler
}
