package utils

import "testing"

func TestNormalizeRoleVariants(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Administrador", "administrador"},
		{"ADMINISTRADOR", "administrador"},
		{"Técnico de Mantenimiento", "tecnico de mantenimiento"},
		{"Tecnico De Mantenimiento", "tecnico de mantenimiento"},
		{"TECNICO DE MANTENIMIENTO", "tecnico de mantenimiento"},
		{"  Gestor   Biomédico  ", "gestor biomedico"},
		{"Responsable de Compras", "responsable de compras"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeRole(tc.in); got != tc.want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRoleVariantsCompareEqual(t *testing.T) {
	variants := []string{
		"Técnico de Mantenimiento",
		"técnico de mantenimiento",
		"TECNICO DE MANTENIMIENTO",
		"Tecnico  De  Mantenimiento",
	}
	base := NormalizeRole(variants[0])
	for _, v := range variants[1:] {
		if NormalizeRole(v) != base {
			t.Fatalf("variant %q did not normalize to %q", v, base)
		}
	}
}
