package dto

// NotificationDTO is the payload pushed in nueva_notificacion events
// and returned by the list endpoints, enriched with the actor profile.
type NotificationDTO struct {
	ID        uint64  `json:"id"`
	Kind      string  `json:"kind"`
	TargetID  *uint64 `json:"targetId"`
	Message   string  `json:"message"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"createdAt"`

	ActorID       uint64 `json:"actorId"`
	ActorNickname string `json:"actorNickname"`
	ActorAvatar   string `json:"actorAvatar"`
}

// UnreadCountDTO is the payload of every actualizar_contador event.
type UnreadCountDTO struct {
	Total int64 `json:"total"`
}
