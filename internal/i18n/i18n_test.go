package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Lookup("en"), Lookup("fr"))
	assert.Equal(t, Lookup("en"), Lookup(""))
	assert.NotEqual(t, Lookup("en"), Lookup("vi"))
}

func TestEveryLanguageIsComplete(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(lang, func(t *testing.T) {
			s := Lookup(lang)
			v := reflect.ValueOf(s)
			for i := 0; i < v.NumField(); i++ {
				field := v.Type().Field(i).Name
				require.NotEmpty(t, v.Field(i).String(), "missing %s for %s", field, lang)
			}
		})
	}
}

func TestVietnameseStrings(t *testing.T) {
	s := Lookup("vi")
	assert.Equal(t, "Đã ghi nhận", s.Recorded)
	assert.Equal(t, "Xác nhận?", s.ConfirmPrompt)
	assert.Equal(t, "từ", s.From)
}
