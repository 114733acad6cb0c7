package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// ClienteRepo provides CRUD access to the `cliente` table.
type ClienteRepo struct{ db *sql.DB }

func NewClienteRepo(db *sql.DB) *ClienteRepo { return &ClienteRepo{db: db} }

func (r *ClienteRepo) Create(ctx context.Context, c *model.Cliente) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cliente (nombre_institucion, nit_ruc, direccion, telefono_contacto, email_contacto, persona_contacto)
		 VALUES (?,?,?,?,?,?)`,
		c.NombreInstitucion, c.NitRuc, c.Direccion, c.TelefonoContacto, c.EmailContacto, c.PersonaContacto)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict // nit_ruc is unique
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *ClienteRepo) GetByID(ctx context.Context, id uint64) (model.Cliente, error) {
	var c model.Cliente
	err := r.db.QueryRowContext(ctx,
		`SELECT id_cliente, nombre_institucion, nit_ruc, direccion, telefono_contacto, email_contacto, persona_contacto
		 FROM cliente WHERE id_cliente=? LIMIT 1`, id).
		Scan(&c.ID, &c.NombreInstitucion, &c.NitRuc, &c.Direccion, &c.TelefonoContacto, &c.EmailContacto, &c.PersonaContacto)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ClienteRepo) List(ctx context.Context, skip, limit int) ([]model.Cliente, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_cliente, nombre_institucion, nit_ruc, direccion, telefono_contacto, email_contacto, persona_contacto
		 FROM cliente ORDER BY id_cliente LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Cliente{}
	for rows.Next() {
		var c model.Cliente
		if err := rows.Scan(&c.ID, &c.NombreInstitucion, &c.NitRuc, &c.Direccion, &c.TelefonoContacto, &c.EmailContacto, &c.PersonaContacto); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cliente SET nombre_institucion=?, nit_ruc=?, direccion=?, telefono_contacto=?, email_contacto=?, persona_contacto=?
		 WHERE id_cliente=?`,
		c.NombreInstitucion, c.NitRuc, c.Direccion, c.TelefonoContacto, c.EmailContacto, c.PersonaContacto, c.ID)
	return checkAffected(res, err)
}

func (r *ClienteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cliente WHERE id_cliente=?", id)
	if isFKViolation(err) {
		return ErrConflict // locations or sales still reference this client
	}
	return checkAffected(res, err)
}

func (r *ClienteRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM cliente WHERE id_cliente=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
