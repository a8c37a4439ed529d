package orchestrators

import (
	"context"
	"errors"
	"strconv"
	"time"

	"agegate/internal/domain/audit"
	"agegate/internal/domain/customfield"
	"agegate/internal/domain/membership"
	"agegate/internal/domain/notice"
	"agegate/internal/domain/settings"
)

var errStoreDown = errors.New("store unavailable")

// mockSettingsStore keeps one record in memory.
type mockSettingsStore struct {
	record *settings.Settings
	getErr error
	setErr error
	sets   int
}

// Get implements SettingsStoreForOrchestrator.
// PRE: name is non-empty
// POST: returns the stored record or defaults
func (m *mockSettingsStore) Get(_ context.Context, _ string, defaults settings.Settings) (settings.Settings, bool, error) {
	if m.getErr != nil {
		return settings.Settings{}, false, m.getErr
	}
	if m.record == nil {
		return defaults.Clone(), false, nil
	}
	return m.record.Clone(), true, nil
}

// Set implements SettingsStoreForOrchestrator.
// PRE: value is validated
// POST: value is the stored record
func (m *mockSettingsStore) Set(_ context.Context, _ string, value settings.Settings) error {
	if m.setErr != nil {
		return m.setErr
	}
	v := value.Clone()
	m.record = &v
	m.sets++
	return nil
}

// mockMembershipStore serves memberships from a slice.
type mockMembershipStore struct {
	items   []membership.Membership
	listErr error
	getErr  error
	deleted []string
}

// List implements MembershipListerForOrchestrator.
func (m *mockMembershipStore) List(_ context.Context) ([]membership.Membership, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]membership.Membership(nil), m.items...), nil
}

// GetByID implements MembershipLookupForGate.
func (m *mockMembershipStore) GetByID(_ context.Context, id string) (membership.Membership, error) {
	if m.getErr != nil {
		return membership.Membership{}, m.getErr
	}
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return membership.Membership{}, membership.ErrNotFound
}

// Save implements MembershipStoreForRegistry.
func (m *mockMembershipStore) Save(_ context.Context, value membership.Membership) error {
	for i, item := range m.items {
		if item.ID == value.ID {
			m.items[i] = value
			return nil
		}
	}
	m.items = append(m.items, value)
	return nil
}

// Delete implements MembershipStoreForRegistry.
func (m *mockMembershipStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	kept := m.items[:0]
	for _, item := range m.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

// mockCustomFieldStore keeps the registry in order.
type mockCustomFieldStore struct {
	fields   []customfield.Field
	listErr  error
	replaces int
}

// List implements CustomFieldListerForOrchestrator.
func (m *mockCustomFieldStore) List(_ context.Context) ([]customfield.Field, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]customfield.Field(nil), m.fields...), nil
}

// ReplaceAll implements CustomFieldStoreForRegistry.
func (m *mockCustomFieldStore) ReplaceAll(_ context.Context, fields []customfield.Field) error {
	m.fields = append([]customfield.Field(nil), fields...)
	m.replaces++
	return nil
}

// Delete implements CustomFieldStoreForRegistry.
func (m *mockCustomFieldStore) Delete(_ context.Context, key string) error {
	kept := m.fields[:0]
	for _, f := range m.fields {
		if f.Key != key {
			kept = append(kept, f)
		}
	}
	m.fields = kept
	return nil
}

// mockSettingsNoticeStore keeps the notices of the last save.
type mockSettingsNoticeStore struct {
	notices    []notice.Notice
	replaceErr error
}

// List implements NoticeStoreForOrchestrator.
func (m *mockSettingsNoticeStore) List(_ context.Context, _ string) ([]notice.Notice, error) {
	return append([]notice.Notice(nil), m.notices...), nil
}

// ReplaceAll implements NoticeStoreForOrchestrator.
func (m *mockSettingsNoticeStore) ReplaceAll(_ context.Context, _ string, notices []notice.Notice) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.notices = append([]notice.Notice(nil), notices...)
	return nil
}

var gateNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func gateClock() time.Time { return gateNow }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "notice-" + strconv.Itoa(n)
	}
}

// mockAuditStore records saved events.
type mockAuditStore struct {
	events  []audit.Event
	saveErr error
}

// Save implements AuditStoreForOrchestrator.
func (m *mockAuditStore) Save(_ context.Context, event audit.Event) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.events = append(m.events, event)
	return nil
}
