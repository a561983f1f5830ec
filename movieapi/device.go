package movieapi

import (
	"context"
	"net/http"
)

type deviceTokenRequest struct {
	DeviceToken string `json:"device_token"`
}

// RegisterDeviceToken registers a push notification device token for the
// authenticated user.
func (c *Client) RegisterDeviceToken(ctx context.Context, deviceToken string) error {
	if deviceToken == "" {
		return &Error{Kind: KindValidation, Message: "device token must not be empty"}
	}
	return c.doJSON(ctx, http.MethodPost, "/update_device_token", nil, deviceTokenRequest{DeviceToken: deviceToken}, nil)
}
