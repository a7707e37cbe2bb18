package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	s := New("unused", PlainKey("k"), nil)
	s.AddFields(
		Field{Name: "Site", Mandatory: true},
		Field{Name: "Account", Mandatory: true},
		Field{Name: "Password", Hidden: true, Mandatory: true},
		Field{Name: "Other"},
	)
	return s
}

func TestKeyConstructors(t *testing.T) {
	plain := PlainKey("passphrase")
	assert.True(t, plain.Plain)
	assert.Equal(t, []byte("passphrase"), plain.Data)

	derived := DerivedKey([]byte{1, 2, 3})
	assert.False(t, derived.Plain)
	assert.Equal(t, []byte{1, 2, 3}, derived.Data)
}

func TestAddSecret_SchemaOrderAndCaseInsensitiveMatch(t *testing.T) {
	s := newTestStore()

	secret := s.AddSecret(map[string]string{
		"password": "hunter2",     // lower case, matches Password
		"SITE":     "example.com", // upper case, matches Site
		"Account":  "me",
	})

	// Entries follow schema order under the schema's spelling, regardless of
	// the input keys' case or map iteration order.
	assert.Equal(t, []string{"Site", "Account", "Password"}, secret.Keys())
	v, ok := secret.Get("Password")
	require.True(t, ok)
	assert.Equal(t, "hunter2", v)
	require.Len(t, s.Secrets(), 1)
}

func TestAddSecret_DropsUnknownKeys(t *testing.T) {
	s := newTestStore()

	secret := s.AddSecret(map[string]string{
		"Site":    "example.com",
		"Unknown": "dropped",
	})

	assert.Equal(t, []string{"Site"}, secret.Keys())
	_, ok := secret.Get("Unknown")
	assert.False(t, ok)
}

func TestAddSecret_SparseRecord(t *testing.T) {
	s := newTestStore()

	secret := s.AddSecret(map[string]string{"Other": "note"})

	assert.Equal(t, []string{"Other"}, secret.Keys())
	_, ok := secret.Get("Site")
	assert.False(t, ok)
}

func TestRemoveSecrets_Single(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "b.com"})
	s.AddSecret(map[string]string{"Site": "a.com"})

	// Sorted view: 0 -> a.com, 1 -> b.com.
	removed, err := s.RemoveSecrets(0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	require.Len(t, s.Secrets(), 1)
	v, _ := s.Secrets()[0].Get("Site")
	assert.Equal(t, "b.com", v)
}

func TestRemoveSecrets_BatchResolvesAgainstOneSnapshot(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "c.com"})
	s.AddSecret(map[string]string{"Site": "a.com"})
	s.AddSecret(map[string]string{"Site": "b.com"})
	s.AddSecret(map[string]string{"Site": "d.com"})

	// Sorted view: 0 a.com, 1 b.com, 2 c.com, 3 d.com. Removing 0 and 2
	// together must delete a.com and c.com even though removing one would
	// shift the other's position in a recomputed view.
	removed, err := s.RemoveSecrets(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var sites []string
	for _, sec := range s.Secrets() {
		v, _ := sec.Get("Site")
		sites = append(sites, v)
	}
	assert.ElementsMatch(t, []string{"b.com", "d.com"}, sites)
}

func TestRemoveSecrets_SkipsOutOfBounds(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com"})

	removed, err := s.RemoveSecrets(0, 5, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, s.Secrets())
}

func TestRemoveSecrets_AllOutOfBounds(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com"})

	removed, err := s.RemoveSecrets(5, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	assert.Equal(t, 0, removed)
	assert.Len(t, s.Secrets(), 1)
}

func TestRemoveSecrets_DuplicateIDsRemoveOnce(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com"})
	s.AddSecret(map[string]string{"Site": "b.com"})

	removed, err := s.RemoveSecrets(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, s.Secrets(), 1)
}

func TestModifySecret(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "b.com", "Password": "old"})
	s.AddSecret(map[string]string{"Site": "a.com"})

	// Sorted view: 0 -> a.com, 1 -> b.com.
	err := s.ModifySecret(1, map[string]string{"password": "new", "Ignored": "x"})
	require.NoError(t, err)

	var target *Secret
	for _, sec := range s.Secrets() {
		if v, _ := sec.Get("Site"); v == "b.com" {
			target = sec
		}
	}
	require.NotNil(t, target)
	v, _ := target.Get("Password")
	assert.Equal(t, "new", v)
	_, ok := target.Get("Ignored")
	assert.False(t, ok)
}

func TestModifySecret_OutOfBounds(t *testing.T) {
	s := newTestStore()
	assert.ErrorIs(t, s.ModifySecret(0, map[string]string{"Site": "x"}), ErrIndexOutOfBounds)
}

func TestModifySecret_IDsShiftAfterMutation(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "b.com"})
	s.AddSecret(map[string]string{"Site": "a.com"})

	// a.com holds id 0. Renaming it to z.com moves it past b.com, so id 0 now
	// addresses b.com.
	require.NoError(t, s.ModifySecret(0, map[string]string{"Site": "z.com"}))

	sec, err := s.SecretAt(0)
	require.NoError(t, err)
	v, _ := sec.Get("Site")
	assert.Equal(t, "b.com", v)
}

func TestSecretAt(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "b.com"})
	s.AddSecret(map[string]string{"Site": "a.com"})

	sec, err := s.SecretAt(0)
	require.NoError(t, err)
	v, _ := sec.Get("Site")
	assert.Equal(t, "a.com", v)

	_, err = s.SecretAt(2)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = s.SecretAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestClear(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com"})
	s.AddSecret(map[string]string{"Site": "b.com"})

	s.Clear()
	assert.Empty(t, s.Secrets())
	assert.Len(t, s.Fields(), 4, "schema survives a clear")

	// Clearing an already empty store changes nothing.
	s.Clear()
	assert.Empty(t, s.Secrets())
}

func TestCloneContentFrom(t *testing.T) {
	src := newTestStore()
	src.AddSecret(map[string]string{"Site": "a.com"})

	dst := New("other", PlainKey("newkey"), nil)
	dst.CloneContentFrom(src)

	assert.Equal(t, src.FieldNames(), dst.FieldNames())
	require.Len(t, dst.Secrets(), 1)
	assert.Same(t, src.Secrets()[0], dst.Secrets()[0])
	assert.Equal(t, []byte("newkey"), dst.Key().Data)
}
