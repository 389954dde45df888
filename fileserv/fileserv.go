package fileserv

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/cli"
	"github.com/navionguy/tinybasic/filelist"
	"github.com/navionguy/tinybasic/settings"
	"github.com/navionguy/tinybasic/terminal"
)

// maxSource caps how much program text a request may post
const maxSource = 1 << 20

const textPlain = "text/plain; charset=utf-8"

// Server runs and lists programs over http
type Server struct {
	src  http.FileSystem // where stored programs live
	opts settings.Options
}

// New builds a server for the programs in dir, opts are the defaults each request starts from
func New(dir string, opts settings.Options) *Server {
	return NewWithFS(http.Dir(dir), opts)
}

// NewWithFS serves the programs held in fsys
func NewWithFS(fsys http.FileSystem, opts settings.Options) *Server {
	return &Server{src: fsys, opts: opts}
}

// NewRouter returns a router with every route wired
func (s *Server) NewRouter() *mux.Router {
	rtr := mux.NewRouter()
	s.WrapRoutes(rtr)
	return rtr
}

// WrapRoutes builds mux routes to all my handlers
//
//	POST /run                  run the posted source
//	POST /list                 list the posted source
//	GET  /programs             stored program names
//	GET  /programs/{file}      a stored program's source
//	GET  /programs/{file}/run  run a stored program
func (s *Server) WrapRoutes(rtr *mux.Router) {
	rtr.HandleFunc("/run", s.logged(s.runPosted)).Methods(http.MethodPost).Name("run")
	rtr.HandleFunc("/list", s.logged(s.listPosted)).Methods(http.MethodPost).Name("list")
	rtr.HandleFunc("/programs", s.logged(s.listPrograms)).Methods(http.MethodGet).Name("programs")
	rtr.HandleFunc("/programs/", s.logged(s.listPrograms)).Methods(http.MethodGet)
	rtr.HandleFunc("/programs/{file}", s.logged(s.serveProgram)).Methods(http.MethodGet).Name("program")
	rtr.HandleFunc("/programs/{file}/run", s.logged(s.runProgram)).Methods(http.MethodGet).Name("runprogram")
}

// statusRecorder remembers the status code for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) logged(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(sr, r)
		log.Printf("%s %s %d", r.Method, r.URL.Path, sr.status)
	}
}

// requestOptions starts from the server defaults and applies any query overrides
func (s *Server) requestOptions(r *http.Request) (settings.Options, error) {
	opts := s.opts
	q := r.URL.Query()

	if v := q.Get("lines"); len(v) > 0 {
		m, err := settings.ParseMode(v)
		if err != nil {
			return opts, err
		}
		opts.LineNumbers = m
	}

	if v := q.Get("limit"); len(v) > 0 {
		lim, err := strconv.Atoi(v)
		if err != nil {
			return opts, err
		}
		if err = settings.CheckLimit(lim); err != nil {
			return opts, err
		}
		opts.LineLimit = lim
	}

	if v := q.Get("comments"); len(v) > 0 {
		c, err := settings.ParseComments(v)
		if err != nil {
			return opts, err
		}
		opts.Comments = c
	}

	return opts, nil
}

func (s *Server) runPosted(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prog, ok := loadProgram(w, io.LimitReader(r.Body, maxSource), opts)
	if ok {
		execute(w, prog, opts, r.URL.Query().Get("input"))
	}
}

func (s *Server) listPosted(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prog, ok := loadProgram(w, io.LimitReader(r.Body, maxSource), opts)
	if ok {
		w.Header().Set("Content-Type", textPlain)
		w.Write([]byte(prog.String()))
	}
}

func (s *Server) serveProgram(w http.ResponseWriter, r *http.Request) {
	hfile, ok := s.openProgram(w, r)
	if !ok {
		return
	}
	defer hfile.Close()

	w.Header().Set("Content-Type", textPlain)
	io.Copy(w, hfile)
}

func (s *Server) runProgram(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hfile, ok := s.openProgram(w, r)
	if !ok {
		return
	}
	defer hfile.Close()

	prog, ok := loadProgram(w, hfile, opts)
	if ok {
		execute(w, prog, opts, r.URL.Query().Get("input"))
	}
}

// listPrograms sends all the program names, one per line,
// or as a json array when asked with ?format=json
// dot files and directories never show up
func (s *Server) listPrograms(w http.ResponseWriter, r *http.Request) {
	hfile, err := s.Open("/")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	defer hfile.Close()

	files, err := hfile.Readdir(-1)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	fl := filelist.NewFileList()
	fl.Build(files)

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		w.Write(fl.JSON())
		return
	}

	w.Header().Set("Content-Type", textPlain)
	w.Write(fl.Text())
}

// openProgram finds the {file} a route names, writing the failure status if he can't
func (s *Server) openProgram(w http.ResponseWriter, r *http.Request) (http.File, bool) {
	name := mux.Vars(r)["file"]

	hfile, err := s.Open(name)
	if err != nil {
		if os.IsPermission(err) {
			w.WriteHeader(http.StatusForbidden)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
		return nil, false
	}

	st, err := hfile.Stat()
	if err != nil || st.IsDir() {
		hfile.Close()
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}

	return hfile, true
}

// parse failures become a 422 carrying the message
func loadProgram(w http.ResponseWriter, src io.Reader, opts settings.Options) (*ast.Program, bool) {
	prog, err := cli.Load(src, opts)
	if err != nil {
		w.Header().Set("Content-Type", textPlain)
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintf(w, "Parse error: %s\n", err)
		return nil, false
	}
	return prog, true
}

// execute runs prog with input as its console, a run time error is
// appended to whatever the program printed before it
func execute(w http.ResponseWriter, prog *ast.Program, opts settings.Options, input string) {
	var out bytes.Buffer
	trm := terminal.New(strings.NewReader(input), &out)

	var rp berrors.Reporter
	rp.Set(cli.Execute(prog, opts, trm))

	w.Header().Set("Content-Type", textPlain)
	if rp.Code() != berrors.None {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintf(&out, "Runtime error: %s\n", rp.Message())
	}
	w.Write(out.Bytes())
}

// Open is a wrapper around the Open method of the embedded FileSystem
// that refuses dot files
func (s *Server) Open(name string) (hFile http.File, err error) {
	if containsDotFile(name) { // If dot file, return 403 response
		return nil, os.ErrPermission
	}

	file, err := s.src.Open(name)
	if err != nil {
		return nil, err
	}

	return dotFileHidingFile{file}, nil
}

// containsDotFile reports whether name contains a path element starting with a period.
// The name is assumed to be a delimited by forward slashes, as guaranteed
// by the http.FileSystem interface.
func containsDotFile(name string) bool {
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// dotFileHidingFile is the http.File use in dotFileHidingFileSystem.
// It is used to wrap the Readdir method of http.File so that we can
// remove files and directories that start with a period from its output.
type dotFileHidingFile struct {
	http.File
}

// Readdir is a wrapper around the Readdir method of the embedded File
// that filters out all files that start with a period in their name.
func (f dotFileHidingFile) Readdir(n int) (fis []os.FileInfo, err error) {
	files, err := f.File.Readdir(n)
	for _, file := range files { // Filters out the dot files
		if !strings.HasPrefix(file.Name(), ".") {
			fis = append(fis, file)
		}
	}
	return
}
