package domain

// ChangeOp тип изменения в хранилище
type ChangeOp string

const (
	OpReplace ChangeOp = "replace" // полная замена списка
	OpUpsert  ChangeOp = "upsert"
	OpRemove  ChangeOp = "remove"
)

// Change уведомление об изменении списка записей или событий.
// Для OpReplace ID не заполняется.
type Change struct {
	Kind ItemKind
	Op   ChangeOp
	ID   ID
}
