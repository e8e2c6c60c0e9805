package lote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

func TestTransicionValida(t *testing.T) {
	casos := []struct {
		nombre string
		desde  entity.EstadoLote
		hacia  entity.EstadoLote
		ok     bool
	}{
		{"disponible a preparado", entity.LoteDisponible, entity.LotePreparado, true},
		{"disponible a sembrado directo", entity.LoteDisponible, entity.LoteSembrado, true},
		{"disponible no salta a cosechado", entity.LoteDisponible, entity.LoteCosechado, false},
		{"sembrado a en crecimiento", entity.LoteSembrado, entity.LoteEnCrecimiento, true},
		{"cosecha anticipada desde sembrado", entity.LoteSembrado, entity.LoteEnCosecha, true},
		{"en cosecha a cosechado", entity.LoteEnCosecha, entity.LoteCosechado, true},
		{"cosechado a descanso", entity.LoteCosechado, entity.LoteEnDescanso, true},
		{"descanso a disponible", entity.LoteEnDescanso, entity.LoteDisponible, true},
		{"cosechado no vuelve a sembrado", entity.LoteCosechado, entity.LoteSembrado, false},
		{"cultivo activo puede enfermar", entity.LoteEnCrecimiento, entity.LoteEnfermo, true},
		{"abandonado solo sale por preparación", entity.LoteAbandonado, entity.LoteDisponible, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.ok, TransicionValida(c.desde, c.hacia))
		})
	}
}

func TestRequiereConfirmacion(t *testing.T) {
	// Pasos del ciclo normal: automáticos.
	assert.False(t, RequiereConfirmacion(entity.LoteDisponible, entity.LoteSembrado))
	assert.False(t, RequiereConfirmacion(entity.LoteEnCosecha, entity.LoteCosechado))
	assert.False(t, RequiereConfirmacion(entity.LoteCosechado, entity.LoteEnDescanso))
	// Estados especiales: siempre con confirmación humana.
	assert.True(t, RequiereConfirmacion(entity.LoteEnCrecimiento, entity.LoteEnfermo))
	assert.True(t, RequiereConfirmacion(entity.LoteEnfermo, entity.LoteEnDescanso))
	assert.True(t, RequiereConfirmacion(entity.LoteEnfermo, entity.LoteAbandonado))
}

func TestConsecuencias(t *testing.T) {
	cons := Consecuencias(entity.LoteEnCrecimiento, entity.LoteEnfermo)
	require.NotEmpty(t, cons)
	assert.Contains(t, cons[0], "revisión")

	// Interrumpir un cultivo activo se informa como consecuencia.
	cons = Consecuencias(entity.LoteEnCrecimiento, entity.LoteEnfermo)
	assert.NotEmpty(t, cons)
}

func TestTransicionarRechazaSinMutar(t *testing.T) {
	l := &entity.Lote{Estado: entity.LoteDisponible}
	err := Transicionar(l, entity.LoteCosechado)
	require.ErrorIs(t, err, domain.ErrTransicionInvalida)
	assert.Equal(t, entity.LoteDisponible, l.Estado)
}

func TestEstadoImplicadoPorLabor(t *testing.T) {
	assert.Equal(t, entity.LoteSembrado, EstadoImplicadoPorLabor(entity.TipoLaborSiembra))
	assert.Equal(t, entity.LoteCosechado, EstadoImplicadoPorLabor(entity.TipoLaborCosecha))
	assert.Empty(t, EstadoImplicadoPorLabor(entity.TipoLaborRiego))
	assert.Empty(t, EstadoImplicadoPorLabor(entity.TipoLaborAnalisisSuelo))
}
