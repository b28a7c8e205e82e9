// Package userlock реализует набор взаимоисключающих секций, ключуемых
// именем пользователя. Мутация записи тренера — это последовательность
// load-modify-save: без сериализации две конкурентные мутации одного
// username читают одно и то же состояние и вторая запись затирает эффект
// первой. Блокировка берётся на весь цикл load+modify+save одного имени,
// операции над разными именами идут параллельно.
package userlock

import "sync"

// Keyed выдаёт мьютекс на каждое имя пользователя.
// Мьютексы создаются лениво и живут всё время работы процесса:
// множество тренеров ограничено, очистка не требуется.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New создает пустой набор блокировок.
func New() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock захватывает мьютекс для username, создавая его при первом обращении.
func (k *Keyed) Lock(username string) {
	k.get(username).Lock()
}

// Unlock освобождает мьютекс для username.
func (k *Keyed) Unlock(username string) {
	k.get(username).Unlock()
}

func (k *Keyed) get(username string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[username]
	if !ok {
		l = &sync.Mutex{}
		k.locks[username] = l
	}
	return l
}
