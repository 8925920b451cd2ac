package repository

// Backend paths, relative to the API base URL.
const (
	PathToken             = "api/token/"
	PathRooms             = "api/habitaciones/habitaciones/"
	PathTables            = "api/mesas-restaurante/mesas/"
	PathSalons            = "api/salones-eventos/salones/"
	PathDishes            = "api/platos/platos/"
	PathDishesAvailable   = "api/platos/platos/disponibles/"
	PathRoomReservations  = "api/reservas-habitacion/"
	PathTableReservations = "api/reservas-restaurante/reservas/"
	PathSalonReservations = "api/reservas-salon/reservas/"
	PathRoomCode          = "api/reservas-habitacion/solicitar-codigo/"
	PathSalonCode         = "api/reservas-salon/solicitar-codigo/"
	PathOrders            = "api/pedidos/pedidos/"
)
