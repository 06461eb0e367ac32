package cases

type Context struct{ id int }

//implicator:implicit ctx
func log(message string, ctx Context) {}

//implicator:passthrough
func wrapper(message string) {
	log(message)
}

type App struct {
	ctx Context `implicit:""`
}

func (a *App) Run() {
	wrapper("boot")
}
