package cases

type Context struct{ id int }

//implicator:implicit ctx
func log(message string, ctx Context) {}

func plain(message string) {
	log(message)
}
