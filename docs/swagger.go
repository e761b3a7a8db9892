// Package docs Facility Discovery API.
//
// Сервис поиска и ранжирования объектов инфраструктуры рядом с жильём
// путешественника. Принимает адрес или координаты, находит ближайшие
// конбини, аптеки и супермаркеты и ранжирует их по времени в пути.
//
// Основные возможности:
// - Поиск по адресу (геокодирование) или координатам
// - Фильтрация по категории и опционально по бренду сети
// - Ранжирование по времени в пути (пешком / транспорт / авто)
// - Деградация до оценки по прямой при недоступности провайдера маршрутов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
