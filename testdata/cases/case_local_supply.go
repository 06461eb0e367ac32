package cases

type Context struct{ id int }

//implicator:implicit ctx
func log(message string, ctx Context) {}

//implicator:passthrough
//implicator:implicit ctx
func helper(message string, ctx Context) {
	log(message)
}

func notify(c Context) {
	helper("hi", c)
}
