package consts

const (
	TokenRevokedKey       = "token:revoked:"
	UserSimpleInfoKey     = "user:simple:info:"
	NotificationUnreadKey = "notification:unread:"
)
