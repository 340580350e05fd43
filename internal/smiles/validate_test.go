package smiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"CCO", nil},
		{"c1ccccc1", nil},
		{"C1CC2CCC1CC2", nil},
		{"CC(=O)Cl", nil},
		{"BrC(Br)Br", nil},
		{"[Na+].[Cl-]", nil},
		{"[13CH3]O", nil},
		{"C%10CCCCC%10", nil},
		{"N#N", nil},
		{"F/C=C/F", nil},
		{"C[C@@H](N)C(=O)O", nil},

		{"", ErrMalformed},
		{"C(C", ErrMalformed},
		{"CC)", ErrMalformed},
		{"(C)C", ErrMalformed},
		{"c1cccc", ErrMalformed},
		{"C[NH3", ErrMalformed},
		{"C]", ErrMalformed},
		{"C[]C", ErrMalformed},
		{"C%1C", ErrMalformed},
		{"C C", ErrMalformed},
		{"CHC", ErrMalformed},

		{"C*", ErrDummyAtom},
		{"C[*:1]", ErrDummyAtom},
		{"C[#0]", ErrDummyAtom},
		{"C[2*]", ErrDummyAtom},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			err := Validate(tc.in)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
