package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/utils"
)

// UsuarioRepo provides CRUD access to the `usuario` table. It owns password
// hashing on create/update so plain passwords never cross the repository
// boundary outward.
type UsuarioRepo struct{ db *sql.DB }

func NewUsuarioRepo(db *sql.DB) *UsuarioRepo { return &UsuarioRepo{db: db} }

var ErrUsernameExists = errors.New("username already exists")

// Create inserts a user and returns its ID. The username is trimmed and
// lower-cased before storage so lookups are case-stable.
func (r *UsuarioRepo) Create(ctx context.Context, nombreCompleto, nombreUsuario, password string, idRol uint64, cost int) (uint64, error) {
	nombreUsuario = strings.ToLower(strings.TrimSpace(nombreUsuario))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO usuario (nombre_completo, nombre_usuario, contrasena_hash, id_rol) VALUES (?,?,?,?)",
		nombreCompleto, nombreUsuario, hash, idRol)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrUsernameExists
		}
		if isFKViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UsuarioRepo) GetByUsername(ctx context.Context, nombreUsuario string) (model.Usuario, error) {
	nombreUsuario = strings.ToLower(strings.TrimSpace(nombreUsuario))
	var u model.Usuario
	err := r.db.QueryRowContext(ctx,
		"SELECT id_usuario,nombre_completo,nombre_usuario,contrasena_hash,id_rol FROM usuario WHERE nombre_usuario=? LIMIT 1",
		nombreUsuario).Scan(&u.ID, &u.NombreCompleto, &u.NombreUsuario, &u.ContrasenaHash, &u.IDRol)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByUsernameWithRole fetches a user and the name of its role in one
// query. The role name is what the authorization gate compares against
// per-route allow-lists.
func (r *UsuarioRepo) GetByUsernameWithRole(ctx context.Context, nombreUsuario string) (model.Usuario, string, error) {
	nombreUsuario = strings.ToLower(strings.TrimSpace(nombreUsuario))
	var u model.Usuario
	var rol sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT u.id_usuario, u.nombre_completo, u.nombre_usuario, u.contrasena_hash, u.id_rol, r.nombre_rol
		 FROM usuario u
		 LEFT JOIN rol r ON r.id_rol = u.id_rol
		 WHERE u.nombre_usuario = ? LIMIT 1`,
		nombreUsuario).Scan(&u.ID, &u.NombreCompleto, &u.NombreUsuario, &u.ContrasenaHash, &u.IDRol, &rol)
	if err == sql.ErrNoRows {
		return u, "", ErrNotFound
	}
	if err != nil {
		return u, "", err
	}
	return u, rol.String, nil
}

// GetByID fetches a user by id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	var u model.Usuario
	err := r.db.QueryRowContext(ctx,
		"SELECT id_usuario,nombre_completo,nombre_usuario,contrasena_hash,id_rol FROM usuario WHERE id_usuario=? LIMIT 1",
		id).Scan(&u.ID, &u.NombreCompleto, &u.NombreUsuario, &u.ContrasenaHash, &u.IDRol)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// List returns users ordered by id with offset/limit paging.
func (r *UsuarioRepo) List(ctx context.Context, skip, limit int) ([]model.Usuario, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id_usuario,nombre_completo,nombre_usuario,contrasena_hash,id_rol FROM usuario ORDER BY id_usuario LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Usuario{}
	for rows.Next() {
		var u model.Usuario
		if err := rows.Scan(&u.ID, &u.NombreCompleto, &u.NombreUsuario, &u.ContrasenaHash, &u.IDRol); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a user. A non-empty password is
// re-hashed; an empty one keeps the stored hash.
func (r *UsuarioRepo) Update(ctx context.Context, id uint64, nombreCompleto string, idRol uint64, password string, cost int) error {
	if password != "" {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return err
		}
		res, err := r.db.ExecContext(ctx,
			"UPDATE usuario SET nombre_completo=?, id_rol=?, contrasena_hash=? WHERE id_usuario=?",
			nombreCompleto, idRol, hash, id)
		return checkAffected(res, err)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE usuario SET nombre_completo=?, id_rol=? WHERE id_usuario=?",
		nombreCompleto, idRol, id)
	return checkAffected(res, err)
}

// Delete removes a user. Dependent audit/sale/purchase rows keep a nullable
// reference, so deletion is not blocked by history.
func (r *UsuarioRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM usuario WHERE id_usuario=?", id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}

// checkAffected maps write results onto sentinel errors: FK violations become
// ErrNotFound (dangling reference in the new values) and zero affected rows
// on a targeted statement become ErrNotFound as well.
func checkAffected(res sql.Result, err error) error {
	if err != nil {
		if isFKViolation(err) {
			return ErrNotFound
		}
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
