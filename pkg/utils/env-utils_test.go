package utils

import "testing"

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "myinstance", expected: "MYINSTANCE"},
		{name: "with spaces", input: "my instance", expected: "MY_INSTANCE"},
		{name: "with special chars", input: "my-instance.01!", expected: "MY_INSTANCE_01"},
		{name: "leading and trailing junk", input: "--instance--", expected: "INSTANCE"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := GenerateEnvVarName(test.input)
			if result != test.expected {
				t.Errorf("Unexpected result. Got: %s, Expected: %s", result, test.expected)
			}
		})
	}
}

func TestGenerateExportDBPasswordEnvVarName(t *testing.T) {
	result := GenerateExportDBPasswordEnvVarName("default instance")
	expected := "SURVEY_DB_PASSWORD_FOR_DEFAULT_INSTANCE"
	if result != expected {
		t.Errorf("Unexpected result. Got: %s, Expected: %s", result, expected)
	}
}
