// Package switches provides typed access to the controller's switch
// inventory API.
package switches

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"

	nd "github.com/ndfabric/go-nd"
)

const inventoryPath = "/api/v1/manage/switches"

// Client wraps the core controller client for switch inventory
// operations.
type Client struct {
	core    *nd.Client
	session *nd.Session
}

// New creates a switch inventory client bound to an authenticated
// session.
func New(core *nd.Client, session *nd.Session) *Client {
	return &Client{core: core, session: session}
}

// Inventory is the switch inventory of one fabric, indexed for lookup
// by hostname, management IP, and serial number. It is read-only after
// GetInventory returns it.
type Inventory struct {
	// FabricName is the fabric the inventory was retrieved for.
	FabricName string

	// Switches is the raw switch list from the controller.
	Switches []map[string]any

	// Meta is the controller's inventory metadata, if any.
	Meta map[string]any

	result *nd.Result

	byName         map[string]map[string]any
	byManagementIP map[string]map[string]any
	bySerialNumber map[string]map[string]any
}

// GetInventory retrieves the switch inventory for a fabric. A
// controller-reported failure is returned as an Inventory whose Result
// has Success=false, not as an error.
func (c *Client) GetInventory(ctx context.Context, fabricName string) (*Inventory, error) {
	if fabricName == "" {
		return nil, errors.New("fabric name is required")
	}

	query := url.Values{"fabricName": []string{fabricName}}
	raw, err := c.core.Do(ctx, c.session, nd.Request{
		Verb: nd.VerbGet,
		Path: inventoryPath + "?" + query.Encode(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get switch inventory for fabric %s", fabricName)
	}

	res, err := nd.Normalize(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "get switch inventory for fabric %s", fabricName)
	}

	inv := &Inventory{
		FabricName:     fabricName,
		result:         res,
		byName:         map[string]map[string]any{},
		byManagementIP: map[string]map[string]any{},
		bySerialNumber: map[string]map[string]any{},
	}
	if !res.Success {
		return inv, nil
	}

	data, _ := res.Data.(map[string]any)
	if meta, ok := data["meta"].(map[string]any); ok {
		inv.Meta = meta
	}
	if list, ok := data["switches"].([]any); ok {
		for _, item := range list {
			sw, ok := item.(map[string]any)
			if !ok {
				continue
			}
			inv.Switches = append(inv.Switches, sw)
			indexSwitch(inv.byName, sw, "hostname")
			indexSwitch(inv.byManagementIP, sw, "fabricManagementIp")
			indexSwitch(inv.bySerialNumber, sw, "serialNumber")
		}
	}

	return inv, nil
}

func indexSwitch(index map[string]map[string]any, sw map[string]any, key string) {
	if v, ok := sw[key].(string); ok && v != "" {
		index[v] = sw
	}
}

// Result returns the normalized controller response the inventory was
// built from.
func (inv *Inventory) Result() *nd.Result { return inv.result }

// ByName returns the switch with the given hostname.
func (inv *Inventory) ByName(hostname string) (map[string]any, bool) {
	sw, ok := inv.byName[hostname]
	return sw, ok
}

// ByManagementIP returns the switch with the given fabric management IP.
func (inv *Inventory) ByManagementIP(ip string) (map[string]any, bool) {
	sw, ok := inv.byManagementIP[ip]
	return sw, ok
}

// BySerialNumber returns the switch with the given serial number.
func (inv *Inventory) BySerialNumber(serial string) (map[string]any, bool) {
	sw, ok := inv.bySerialNumber[serial]
	return sw, ok
}

// SerialNumberForSwitchName maps a switch hostname to its serial
// number, or "" when the switch is not in the inventory.
func (inv *Inventory) SerialNumberForSwitchName(hostname string) string {
	sw, ok := inv.byName[hostname]
	if !ok {
		return ""
	}
	serial, _ := sw["serialNumber"].(string)
	return serial
}
