package initchecker

import "fmt"

// CheckInit принимает пары "имя", зависимость и паникует, если зависимость не инициализирована.
// Нужен для контроля порядка вызова NewHandler при старте сервиса.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечетное количество аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("CheckInit: аргумент %v должен быть строкой с именем зависимости", i))
		}
		if pairs[i+1] == nil {
			panic(fmt.Sprintf("зависимость %s не инициализирована", name))
		}
	}
}
