package cases

type Context struct{ id int }

//implicator:implicit
var boot Context

//implicator:implicit ctx
func log(message string, ctx Context) {}

func startup() {
	log("up")
}

func custom(c Context) {
	log("custom", c)
}
