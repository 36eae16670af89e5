package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/config"
)

func setenv(key, value string) {
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(os.Unsetenv, key)
}

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

	return path
}

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should start from the defaults", func() {
		cfg, err := config.Load("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
		Expect(cfg.Family).To(Equal("GW1N-9"))
		Expect(cfg.Placer).To(Equal("sa"))
		Expect(cfg.Router).To(Equal("router1"))
		Expect(cfg.Delay).To(Equal(config.Delay{Scale: 0.1}))
	})

	It("should read a YAML file", func() {
		path := writeFile(dir, "fabricdb.yaml", `
family: GW1NR-4
chipdb: gw1nr4.bin
router: router2
delay:
  scale: 0.2
  offset: 1.5
log_level: debug
`)

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Family).To(Equal("GW1NR-4"))
		Expect(cfg.ChipDB).To(Equal("gw1nr4.bin"))
		Expect(cfg.Placer).To(Equal("sa"))
		Expect(cfg.Router).To(Equal("router2"))
		Expect(cfg.Delay).To(Equal(config.Delay{Scale: 0.2, Offset: 1.5}))
		Expect(cfg.LogLevel).To(Equal("debug"))
	})

	It("should let the environment override the file", func() {
		path := writeFile(dir, "fabricdb.yaml", "placer: sa\n")
		setenv(config.EnvPlacer, "heap")
		setenv(config.EnvChipDB, "/tmp/chip.yaml")

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Placer).To(Equal("heap"))
		Expect(cfg.ChipDB).To(Equal("/tmp/chip.yaml"))
	})

	It("should reject what the architecture would refuse", func() {
		path := writeFile(dir, "fabricdb.yaml", "placer: annealer\n")

		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("annealer")))

		cfg := config.Default()
		cfg.Delay.Scale = -1
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should fail on a missing or malformed file", func() {
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))
		Expect(err).To(HaveOccurred())

		path := writeFile(dir, "bad.yaml", "family: [\n")
		_, err = config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("parse config")))
	})

	It("should build the architecture it describes", func() {
		db := chipdb.NewBuilder(arch.DefaultFamily, 1, 1).
			WithDevice("GW1N-LV9").
			AddBel(0, 0, "LUT0").
			Build()

		f, err := os.Create(filepath.Join(dir, "chip.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(chipdb.EncodeYAML(f, db)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		cfg := config.Default()
		cfg.ChipDB = f.Name()
		cfg.Delay = config.Delay{Scale: 1, Offset: 0.5}

		a, err := cfg.BuildArch()
		Expect(err).NotTo(HaveOccurred())
		Expect(a.ChipName()).To(Equal("GW1N-LV9"))
		Expect(a.Bels()).To(HaveLen(1))

		cfg.Device = "GW1N-UV9"
		_, err = cfg.BuildArch()
		Expect(err).To(MatchError(ContainSubstring("GW1N-UV9")))
	})

	It("should ask for a chip description", func() {
		_, err := config.Default().BuildArch()
		Expect(err).To(MatchError(ContainSubstring(config.EnvChipDB)))
	})
})
