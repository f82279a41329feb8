// Package manage provides typed access to the controller's credential
// management API. Every operation validates its inputs, sends one
// request through the core client, and returns the normalized result.
package manage

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	nd "github.com/ndfabric/go-nd"
	"github.com/ndfabric/go-nd/api/switches"
)

const (
	credentialsPath = "/api/v1/manage/credentials"

	detailsPath          = credentialsPath + "/details"
	defaultSwitchPath    = credentialsPath + "/defaultSwitchCredentials"
	robotSwitchPath      = credentialsPath + "/robotSwitchCredentials"
	userSwitchPath       = credentialsPath + "/switches"
	userSwitchRemovePath = userSwitchPath + "/actions/remove"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client wraps the core controller client for credential management
// operations.
type Client struct {
	core    *nd.Client
	session *nd.Session
}

// New creates a credential management client bound to an authenticated
// session.
func New(core *nd.Client, session *nd.Session) *Client {
	return &Client{core: core, session: session}
}

// SwitchCredentials is the payload for saving default or robot switch
// credentials.
type SwitchCredentials struct {
	SwitchUsername string `json:"switchUsername" validate:"required"`
	SwitchPassword string `json:"switchPassword" validate:"required"`
}

// robotSwitchCredentials marks a credential save as belonging to the
// robot account.
type robotSwitchCredentials struct {
	SwitchCredentials
	IsRobot bool `json:"isRobot"`
}

// UserSwitchCredentials is the configuration for saving per-switch
// credentials. The switch is addressed by name; the controller API
// wants a serial number, which is resolved through the fabric
// inventory.
type UserSwitchCredentials struct {
	FabricName     string `validate:"required,max=64"`
	SwitchName     string `validate:"required"`
	SwitchUsername string `validate:"required"`
	SwitchPassword string `validate:"required"`
}

// UserSwitchTarget addresses a switch whose credentials are to be
// fetched or removed.
type UserSwitchTarget struct {
	FabricName string `validate:"required,max=64"`
	SwitchName string `validate:"required"`
}

type switchID struct {
	SwitchID string `json:"switchId"`
}

type userSwitchPayload struct {
	SwitchIDs      []switchID `json:"switchIds"`
	SwitchUsername string     `json:"switchUsername,omitempty"`
	SwitchPassword string     `json:"switchPassword,omitempty"`
}

// GetCredentialsDetails retrieves the controller's credential details.
func (c *Client) GetCredentialsDetails(ctx context.Context) (*nd.Result, error) {
	return c.call(ctx, nd.VerbGet, detailsPath, nil, "get credentials details")
}

// GetDefaultSwitchCredentials retrieves the default switch credentials.
func (c *Client) GetDefaultSwitchCredentials(ctx context.Context) (*nd.Result, error) {
	return c.call(ctx, nd.VerbGet, defaultSwitchPath, nil, "get default switch credentials")
}

// SaveDefaultSwitchCredentials saves the default switch credentials.
func (c *Client) SaveDefaultSwitchCredentials(ctx context.Context, creds SwitchCredentials) (*nd.Result, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, errors.Wrap(err, "invalid default switch credentials")
	}
	return c.call(ctx, nd.VerbPost, defaultSwitchPath, creds, "save default switch credentials")
}

// DeleteDefaultSwitchCredentials removes the default switch credentials.
func (c *Client) DeleteDefaultSwitchCredentials(ctx context.Context) (*nd.Result, error) {
	return c.call(ctx, nd.VerbDelete, defaultSwitchPath, nil, "delete default switch credentials")
}

// GetRobotSwitchCredentials retrieves the robot switch credentials.
func (c *Client) GetRobotSwitchCredentials(ctx context.Context) (*nd.Result, error) {
	return c.call(ctx, nd.VerbGet, robotSwitchPath, nil, "get robot switch credentials")
}

// SaveRobotSwitchCredentials saves the robot switch credentials.
func (c *Client) SaveRobotSwitchCredentials(ctx context.Context, creds SwitchCredentials) (*nd.Result, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, errors.Wrap(err, "invalid robot switch credentials")
	}
	payload := robotSwitchCredentials{SwitchCredentials: creds, IsRobot: true}
	return c.call(ctx, nd.VerbPost, robotSwitchPath, payload, "save robot switch credentials")
}

// DeleteRobotSwitchCredentials removes the robot switch credentials.
func (c *Client) DeleteRobotSwitchCredentials(ctx context.Context) (*nd.Result, error) {
	return c.call(ctx, nd.VerbDelete, robotSwitchPath, nil, "delete robot switch credentials")
}

// GetUserSwitchCredentials retrieves the per-switch credential entries.
func (c *Client) GetUserSwitchCredentials(ctx context.Context) (*nd.Result, error) {
	return c.call(ctx, nd.VerbGet, userSwitchPath, nil, "get user switch credentials")
}

// SaveUserSwitchCredentials saves credentials for one switch, resolving
// the switch name to its serial number via the fabric inventory.
func (c *Client) SaveUserSwitchCredentials(ctx context.Context, creds UserSwitchCredentials) (*nd.Result, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, errors.Wrap(err, "invalid user switch credentials")
	}

	serial, err := c.serialNumberFor(ctx, creds.FabricName, creds.SwitchName)
	if err != nil {
		return nil, err
	}

	payload := userSwitchPayload{
		SwitchIDs:      []switchID{{SwitchID: serial}},
		SwitchUsername: creds.SwitchUsername,
		SwitchPassword: creds.SwitchPassword,
	}
	return c.call(ctx, nd.VerbPost, userSwitchPath, payload, "save user switch credentials")
}

// DeleteUserSwitchCredentials removes the credential entry for one
// switch.
func (c *Client) DeleteUserSwitchCredentials(ctx context.Context, target UserSwitchTarget) (*nd.Result, error) {
	if err := validate.Struct(target); err != nil {
		return nil, errors.Wrap(err, "invalid user switch target")
	}

	serial, err := c.serialNumberFor(ctx, target.FabricName, target.SwitchName)
	if err != nil {
		return nil, err
	}

	payload := userSwitchPayload{SwitchIDs: []switchID{{SwitchID: serial}}}
	return c.call(ctx, nd.VerbPost, userSwitchRemovePath, payload, "delete user switch credentials")
}

func (c *Client) serialNumberFor(ctx context.Context, fabricName, switchName string) (string, error) {
	inventory, err := switches.New(c.core, c.session).GetInventory(ctx, fabricName)
	if err != nil {
		return "", err
	}

	serial := inventory.SerialNumberForSwitchName(switchName)
	if serial == "" {
		return "", errors.Newf("switch %s not found in fabric %s", switchName, fabricName)
	}
	return serial, nil
}

func (c *Client) call(ctx context.Context, verb, path string, body any, op string) (*nd.Result, error) {
	raw, err := c.core.Do(ctx, c.session, nd.Request{Verb: verb, Path: path, Body: body})
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	result, err := nd.Normalize(raw)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return result, nil
}
