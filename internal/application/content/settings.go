package content

import (
	"context"
	"encoding/json"
	"fmt"

	"kingdomstudio/internal/domain/settings"
)

const entitySetting = "setting"

// GetSetting returns the stored value for key.
// POST: ok is false when the key is absent or the store cannot be read
func (a *Access) GetSetting(ctx context.Context, key string) (json.RawMessage, bool) {
	return a.getFrom(ctx, a.stores.Settings, key)
}

func (a *Access) getFrom(ctx context.Context, store SettingsStore, key string) (json.RawMessage, bool) {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	raw, err := store.Get(ctx, key)
	if err != nil {
		a.readFailed("get", "setting "+key, err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	return raw, true
}

// SetSetting upserts value, JSON-encoded, under key.
// POST: exactly one row exists for key, or *RemoteWriteError
func (a *Access) SetSetting(ctx context.Context, key string, value any) error {
	return a.putTo(ctx, a.stores.Settings, key, value)
}

func (a *Access) putTo(ctx context.Context, store SettingsStore, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := store.Put(ctx, key, raw); err != nil {
		return a.writeFailed("update", entitySetting+" "+key, err)
	}
	return nil
}

// GetRegistrationPrice returns the fee, or 3000 when absent or unreadable.
func (a *Access) GetRegistrationPrice(ctx context.Context) int {
	raw, ok := a.GetSetting(ctx, settings.KeyRegistrationPrice)
	if !ok {
		return settings.DefaultRegistrationPrice
	}
	price, ok := settings.DecodeRegistrationPrice(raw)
	if !ok {
		a.logger.Sugar().Warnw("setting_undecodable", "key", settings.KeyRegistrationPrice)
		return settings.DefaultRegistrationPrice
	}
	return price
}

// SetRegistrationPrice stores a new fee.
func (a *Access) SetRegistrationPrice(ctx context.Context, price int) error {
	if err := settings.ValidatePrice(price); err != nil {
		return err
	}
	return a.SetSetting(ctx, settings.KeyRegistrationPrice, price)
}

// GetContactInfo returns the stored contact details or the defaults.
func (a *Access) GetContactInfo(ctx context.Context) settings.ContactInfo {
	raw, ok := a.GetSetting(ctx, settings.KeyContactInfo)
	if !ok {
		return settings.DefaultContactInfo()
	}
	var info settings.ContactInfo
	if err := decodeObject(raw, &info); err != nil {
		a.logger.Sugar().Warnw("setting_undecodable", "key", settings.KeyContactInfo, "error", err)
		return settings.DefaultContactInfo()
	}
	return info
}

// SetContactInfo stores new contact details.
func (a *Access) SetContactInfo(ctx context.Context, info settings.ContactInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	return a.SetSetting(ctx, settings.KeyContactInfo, info)
}

// GetSocialMediaLinks returns the stored links or the defaults.
func (a *Access) GetSocialMediaLinks(ctx context.Context) settings.SocialMediaLinks {
	raw, ok := a.GetSetting(ctx, settings.KeySocialMediaLinks)
	if !ok {
		return settings.DefaultSocialMediaLinks()
	}
	var links settings.SocialMediaLinks
	if err := decodeObject(raw, &links); err != nil {
		a.logger.Sugar().Warnw("setting_undecodable", "key", settings.KeySocialMediaLinks, "error", err)
		return settings.DefaultSocialMediaLinks()
	}
	return links
}

// SetSocialMediaLinks stores new links.
func (a *Access) SetSocialMediaLinks(ctx context.Context, links settings.SocialMediaLinks) error {
	if err := links.Validate(); err != nil {
		return err
	}
	return a.SetSetting(ctx, settings.KeySocialMediaLinks, links)
}

// decodeObject accepts an object, or a JSON string holding an object.
func decodeObject(raw json.RawMessage, v any) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(settings.Unquote(s))
	}
	return json.Unmarshal(raw, v)
}
