package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"bank": map[string]any{
			"accountNumber": "",
			"statementUrl":  "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"upload": map[string]any{
			"publicUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "BANK_ACCOUNTNUMBER", want: "bank.accountNumber"},
		{envKey: "BANK_STATEMENTURL", want: "bank.statementUrl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "UPLOAD_PUBLICURL", want: "upload.publicUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
