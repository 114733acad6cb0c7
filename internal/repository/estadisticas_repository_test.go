package repository

import (
	"context"
	"testing"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

func TestCostosMantenimientoEquipoNotFound(t *testing.T) {
	db := testDB(t)
	repo := NewEstadisticasRepo(db)

	if _, err := repo.CostosMantenimientoEquipo(context.Background(), 999999999); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCostosMantenimientoEquipo(t *testing.T) {
	db := testDB(t)
	repo := NewEstadisticasRepo(db)
	ctx := context.Background()

	idMant, _ := fixture(t, db, 5, 2)

	var idEquipo uint64
	if err := db.QueryRow("SELECT id_equipo FROM mantenimiento WHERE id_mantenimiento=?", idMant).Scan(&idEquipo); err != nil {
		t.Fatalf("read equipo: %v", err)
	}

	rep, err := repo.CostosMantenimientoEquipo(ctx, idEquipo)
	if err != nil {
		t.Fatalf("CostosMantenimientoEquipo: %v", err)
	}
	if rep.IDEquipo != idEquipo || rep.NombreEquipo == "" {
		t.Fatalf("header = (%d, %q), want the fixture equipment", rep.IDEquipo, rep.NombreEquipo)
	}
	if rep.TotalMantenimientos != 1 {
		t.Fatalf("total mantenimientos = %d, want 1", rep.TotalMantenimientos)
	}
	if len(rep.PorTipo) != 1 || rep.PorTipo[0].Cantidad != 1 {
		t.Fatalf("por_tipo = %+v, want one bucket with one event", rep.PorTipo)
	}
}

func TestRepuestosMasUsadosIncludesConsumption(t *testing.T) {
	db := testDB(t)
	stats := NewEstadisticasRepo(db)
	usos := NewUsoRepuestoRepo(db)
	ctx := context.Background()

	idMant, idRep := fixture(t, db, 5, 2)

	uso := model.UsoRepuesto{IDMantenimiento: idMant, IDRepuesto: idRep, CantidadUsada: 2}
	if _, err := usos.Registrar(ctx, &uso); err != nil {
		t.Fatalf("Registrar: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM uso_repuesto WHERE id_mantenimiento=? AND id_repuesto=?", idMant, idRep)
	})

	ranking, err := stats.RepuestosMasUsados(ctx, 100)
	if err != nil {
		t.Fatalf("RepuestosMasUsados: %v", err)
	}
	for _, r := range ranking {
		if r.IDRepuesto == idRep {
			if r.TotalUsado != 2 || r.VecesUsado != 1 {
				t.Fatalf("ranking entry = %+v, want total 2 over 1 event", r)
			}
			return
		}
	}
	t.Fatalf("fixture part %d missing from ranking", idRep)
}
