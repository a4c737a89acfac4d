package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/notargets/goblast/model_problems/ShockTube1D"
	"github.com/notargets/goblast/sod_shock_tube"
)

var (
	csvFile string
	run     bool
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	runPtr := flag.Bool("run", false, "run the Sod study for every flux scheme and write it to csvFile")
	flag.Parse()
	csvFile, run = *csvFilePtr, *runPtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if run {
		studies, err := RunSod([]string{"HLL", "HLLC", "Rusanov"}, []int{50, 100, 200, 400}, 0.5)
		if err != nil {
			logrus.Fatal(err)
		}
		f, err := os.Create(csvFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if err = writeCSV(f, studies); err != nil {
			logrus.Fatal(err)
		}
		_ = f.Close()
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		logrus.Fatal(err)
	}
	defer f.Close()
	studies, err := readCSV(bufio.NewReader(f))
	if err != nil {
		logrus.Fatal(err)
	}
	for _, title := range sortedTitles(studies) {
		cs := studies[title]
		fmt.Printf("Title = %s, CFL = %5.2f\n", cs.title, cs.CFL)
		orders := cs.Orders()
		for i := range cs.nCells {
			if i == 0 {
				fmt.Printf("%6d, %12.6e\n", cs.nCells[i], cs.rhoL1[i])
				continue
			}
			fmt.Printf("%6d, %12.6e, order %5.2f\n", cs.nCells[i], cs.rhoL1[i], orders[i-1])
		}
	}
}

type ConvergenceStudy struct {
	title  string
	CFL    float64
	nCells []int
	rhoL1  []float64
}

func NewConvergenceStudy(title string, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		CFL:   CFL,
	}
}

func (cs *ConvergenceStudy) Add(nCells int, rhoL1 float64) {
	cs.nCells = append(cs.nCells, nCells)
	cs.rhoL1 = append(cs.rhoL1, rhoL1)
}

// Orders are the observed orders between successive refinements,
// log(e1/e2)/log(N2/N1).
func (cs *ConvergenceStudy) Orders() (orders []float64) {
	for i := 1; i < len(cs.nCells); i++ {
		orders = append(orders,
			math.Log(cs.rhoL1[i-1]/cs.rhoL1[i])/
				math.Log(float64(cs.nCells[i])/float64(cs.nCells[i-1])))
	}
	return
}

// RunSod solves the Sod problem to t = 0.2 at every mesh size with every
// flux scheme.
func RunSod(schemes []string, nCells []int, CFL float64) (studies map[string]*ConvergenceStudy, err error) {
	studies = make(map[string]*ConvergenceStudy)
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	for _, scheme := range schemes {
		cs := NewConvergenceStudy(scheme, CFL)
		for _, n := range nCells {
			var st *ShockTube1D.ShockTube
			st, err = ShockTube1D.NewShockTube(ShockTube1D.Config{
				Title:      "sod",
				CFL:        CFL,
				FinalTime:  0.2,
				NCells:     n,
				XMin:       0,
				XMax:       1,
				Left:       sod_shock_tube.State{Rho: 1, U: 0, P: 1},
				Right:      sod_shock_tube.State{Rho: 0.125, U: 0, P: 0.1},
				FluxScheme: scheme,
			})
			if err != nil {
				return
			}
			st.Log = log
			if err = st.Run(); err != nil {
				return
			}
			var l1 float64
			if l1, err = st.DensityL1Error(); err != nil {
				return
			}
			cs.Add(n, l1)
		}
		studies[scheme] = cs
	}
	return
}

func sortedTitles(studies map[string]*ConvergenceStudy) (titles []string) {
	for title := range studies {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return
}

func writeCSV(w io.Writer, studies map[string]*ConvergenceStudy) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"title", "nCells", "CFL", "rhoL1"}); err != nil {
		return
	}
	for _, title := range sortedTitles(studies) {
		cs := studies[title]
		for i := range cs.nCells {
			rec := []string{
				cs.title,
				strconv.Itoa(cs.nCells[i]),
				strconv.FormatFloat(cs.CFL, 'g', -1, 64),
				strconv.FormatFloat(cs.rhoL1[i], 'e', 10, 64),
			}
			if err = cw.Write(rec); err != nil {
				return
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(r io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		ok      bool
		cs      *ConvergenceStudy
	)
	studies = make(map[string]*ConvergenceStudy)
	if records, err = csv.NewReader(r).ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 4 {
			err = fmt.Errorf("line %d has %d fields, need 4", i+1, len(rec))
			return
		}
		var (
			title = rec[0]
			n     int
			cfl   float64
			l1    float64
		)
		if n, err = strconv.Atoi(rec[1]); err != nil {
			return
		}
		if cfl, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return
		}
		if l1, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return
		}
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title, cfl)
			studies[title] = cs
		}
		cs.Add(n, l1)
	}
	return
}
