package ordering

import "github.com/shopspring/decimal"

// WeightedUnitPrice precio unitario promedio ponderado al fusionar dos líneas del mismo artículo.
// NuevoPrecio = ((CantActual * PrecioActual) + (CantNueva * PrecioNuevo)) / (CantActual + CantNueva)
func WeightedUnitPrice(cantActual, precioActual, cantNueva, precioNuevo decimal.Decimal) decimal.Decimal {
	sum := cantActual.Add(cantNueva)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := cantActual.Mul(precioActual).Add(cantNueva.Mul(precioNuevo))
	return num.Div(sum)
}
