package cases

type Context struct{ id int }

type Service struct {
	ctx Context `implicit:""`
}

//implicator:implicit ctx
func log(message string, ctx Context) {}

func (s *Service) Report(message string) {
	log(message)
}
