package service

import "errors"

var (
	// Ошибки входных данных: генерация продаж требует непустых каталогов
	ErrNoProducts  = errors.New("product catalog is empty")
	ErrNoCustomers = errors.New("customer base is empty")

	// ErrUnknownCustomer означает нарушение внутреннего инварианта:
	// продажа ссылается на клиента, которого нет в клиентской базе.
	// По построению такое невозможно, ошибка не является восстановимой.
	ErrUnknownCustomer = errors.New("sale references unknown customer")
)
