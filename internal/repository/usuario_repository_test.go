package repository

import (
	"context"
	"testing"
)

func TestGetByUsernameNormalizesLookup(t *testing.T) {
	db := testDB(t)
	repo := NewUsuarioRepo(db)
	ctx := context.Background()

	res, err := db.ExecContext(ctx, "INSERT INTO rol (nombre_rol) VALUES (?)", "rol de prueba usuario")
	if err != nil {
		t.Fatalf("insert rol: %v", err)
	}
	idRol64, _ := res.LastInsertId()
	idRol := uint64(idRol64)
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM rol WHERE id_rol=?", idRol)
	})

	id, err := repo.Create(ctx, "Usuario De Prueba", "  UsuarioPrueba  ", "clave123", idRol, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM usuario WHERE id_usuario=?", id)
	})

	// Stored lower-cased and trimmed, found regardless of caller casing.
	u, err := repo.GetByUsername(ctx, "USUARIOPRUEBA")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u.ID != id || u.NombreUsuario != "usuarioprueba" {
		t.Fatalf("got (%d, %q), want (%d, %q)", u.ID, u.NombreUsuario, id, "usuarioprueba")
	}

	if _, err := repo.GetByUsername(ctx, "no-existe"); err != ErrNotFound {
		t.Fatalf("unknown username: err = %v, want ErrNotFound", err)
	}
}
