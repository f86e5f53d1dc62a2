package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Attributes
		want Attributes
	}{
		{
			name: "empty lists are back-filled",
			in:   Attributes{},
			want: GenericAttributes(),
		},
		{
			name: "single role gains the base role",
			in:   Attributes{Entities: []string{"Invoice"}, Roles: []string{"Accountant"}, Features: []string{"Send Invoices"}},
			want: Attributes{Entities: []string{"Invoice"}, Roles: []string{"Accountant", BaseRole}, Features: []string{"Send Invoices"}},
		},
		{
			name: "single base role is left alone",
			in:   Attributes{Entities: []string{"Page"}, Roles: []string{"admin"}, Features: []string{"Edit Pages"}},
			want: Attributes{Entities: []string{"Page"}, Roles: []string{"admin"}, Features: []string{"Edit Pages"}},
		},
		{
			name: "duplicates and blanks dropped",
			in:   Attributes{Entities: []string{" Task ", "task", ""}, Roles: []string{"Lead", "Member"}, Features: []string{"Track", "TRACK"}},
			want: Attributes{Entities: []string{"Task"}, Roles: []string{"Lead", "Member"}, Features: []string{"Track"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Truncates(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

	got := Normalize(Attributes{Entities: many, Roles: many, Features: many})

	assert.Len(t, got.Entities, MaxEntities)
	assert.Len(t, got.Roles, MaxRoles)
	assert.Len(t, got.Features, MaxFeatures)
}
