package dto

// SubscriptionKeysDTO are the browser-generated encryption keys.
type SubscriptionKeysDTO struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

// SubscribeDTO for registering a push subscription
type SubscribeDTO struct {
	Endpoint string              `json:"endpoint" binding:"required"`
	Keys     SubscriptionKeysDTO `json:"keys" binding:"required"`
}

// UnsubscribeDTO for removing a push subscription
type UnsubscribeDTO struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
