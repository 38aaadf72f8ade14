package strapi

import (
	"context"
	"errors"
	"net/http"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
)

// Login exchanges credentials for a bearer token via the local auth provider.
func (c *Client) Login(ctx context.Context, identifier, password string) (_ *domain.AuthResult, err error) {
	defer obs.Time(ctx, "strapi.Login")(&err)

	r := request{
		method: http.MethodPost,
		path:   "/api/auth/local",
		body:   loginBody{Identifier: identifier, Password: password},
		kind:   domain.KindAuthentication,
	}

	var resp loginResponse
	if err := c.call(ctx, nil, r, &resp); err != nil {
		return nil, err
	}

	if resp.JWT == "" {
		return nil, &domain.APIError{
			Kind: domain.KindAuthentication,
			Op:   r.op(),
			Err:  errors.New("response carried no token"),
		}
	}

	username := resp.User.Username
	if username == "" {
		username = resp.User.Email
	}
	if username == "" {
		username = identifier
	}

	return &domain.AuthResult{Token: resp.JWT, Username: username}, nil
}
