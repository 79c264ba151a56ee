package consts

// Notification kinds. Values match the wire protocol and the
// notifications.type column.
const (
	NotificationKindLike    = "like"
	NotificationKindComment = "comment"
	NotificationKindFollow  = "follow"
	NotificationKindGeneric = "generic"
)

// Live stream event names.
const (
	EventNewNotification = "nueva_notificacion"
	EventCounterUpdate   = "actualizar_contador"
)

// Post publication status after moderation.
const (
	PostStatusPublished = 1
	PostStatusReview    = 2
	PostStatusRejected  = 3
)

const DefaultAvatarURL = "default_avatar.png"
