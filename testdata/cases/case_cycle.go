package cases

//implicator:passthrough
func ping(n int) {
	pong(n)
}

//implicator:passthrough
func pong(n int) {
	ping(n)
}
