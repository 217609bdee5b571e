package monitors

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/event"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
	"github.com/signalfx/winsnmp-agent/pkg/monitors/types"
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// MonitorManager coordinates the startup and shutdown of monitors based on the
// configuration provided by the user.  Every valid config results in exactly
// one active monitor; configs whose key collides with an active monitor are
// rejected.
type MonitorManager struct {
	monitorConfigs map[uint64]config.MonitorCustomConfig
	activeMonitors []*ActiveMonitor
	badConfigs     map[uint64]*config.MonitorConfig
	// Config key -> hash of the config that claimed it
	configKeys map[string]uint64
	// Hash of a bad config -> the config key it lost to another monitor
	keyCollisions map[uint64]string
	lock       sync.Mutex

	DPs    chan<- []*datapoint.Datapoint
	Events chan<- *event.Event

	intervalSeconds int
	idGenerator     func(string) types.MonitorID
}

// NewMonitorManager creates a new instance of the MonitorManager
func NewMonitorManager(dps chan<- []*datapoint.Datapoint, events chan<- *event.Event) *MonitorManager {
	return &MonitorManager{
		monitorConfigs: make(map[uint64]config.MonitorCustomConfig),
		activeMonitors: make([]*ActiveMonitor, 0),
		badConfigs:     make(map[uint64]*config.MonitorConfig),
		configKeys:     make(map[string]uint64),
		keyCollisions:  make(map[uint64]string),
		DPs:            dps,
		Events:         events,
		idGenerator:    newIDGenerator(),
	}
}

func newIDGenerator() func(string) types.MonitorID {
	counts := map[string]int{}
	return func(monitorType string) types.MonitorID {
		counts[monitorType]++
		return types.MonitorID(fmt.Sprintf("%s-%d", monitorType, counts[monitorType]))
	}
}

// Configure receives a list of monitor configurations.  Monitors whose config
// is no longer present are shut down and any new configs are started.
func (mm *MonitorManager) Configure(confs []config.MonitorConfig, intervalSeconds int) {
	mm.lock.Lock()
	defer mm.lock.Unlock()

	mm.intervalSeconds = intervalSeconds

	requireSoloTrue := anyMarkedSolo(confs)

	newConfig, deletedHashes := diffNewConfig(confs, mm.allConfigHashes())

	for _, hash := range deletedHashes {
		mm.deleteMonitorsByConfigHash(hash)

		delete(mm.monitorConfigs, hash)
		delete(mm.badConfigs, hash)
		delete(mm.keyCollisions, hash)
	}

	newConfig = append(newConfig, mm.takeFreedCollisions()...)

	for i := range newConfig {
		conf := newConfig[i]
		hash := conf.Hash()

		if requireSoloTrue && !conf.Solo {
			log.Infof("Solo mode is active, skipping monitor of type %s", conf.Type)
			continue
		}

		monConfig, err := mm.handleNewConfig(&conf, hash)
		if err != nil {
			log.WithFields(log.Fields{
				"monitorType": conf.Type,
				"error":       err,
			}).Error("Could not process configuration for monitor")
			conf.ValidationError = err.Error()
			mm.badConfigs[hash] = &conf

			var collision *configKeyCollision
			if errors.As(err, &collision) {
				mm.keyCollisions[hash] = collision.key
			}
			continue
		}

		mm.monitorConfigs[hash] = monConfig
	}
}

// Pulls out the bad configs that lost their config key to a monitor that has
// since been removed, so that they get another chance to be created.
func (mm *MonitorManager) takeFreedCollisions() []config.MonitorConfig {
	var hashes []uint64
	for hash, key := range mm.keyCollisions {
		if _, taken := mm.configKeys[key]; !taken {
			hashes = append(hashes, hash)
		}
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	var out []config.MonitorConfig
	for _, hash := range hashes {
		conf := *mm.badConfigs[hash]
		conf.ValidationError = ""
		out = append(out, conf)

		delete(mm.badConfigs, hash)
		delete(mm.keyCollisions, hash)
	}
	return out
}

func (mm *MonitorManager) allConfigHashes() map[uint64]bool {
	hashes := make(map[uint64]bool)
	for h := range mm.monitorConfigs {
		hashes[h] = true
	}
	for h := range mm.badConfigs {
		hashes[h] = true
	}
	return hashes
}

// Returns the any new configs and any removed config hashes
func diffNewConfig(confs []config.MonitorConfig, oldHashes map[uint64]bool) ([]config.MonitorConfig, []uint64) {
	newConfigHashes := make(map[uint64]bool)
	var newConfig []config.MonitorConfig
	for i := range confs {
		hash := confs[i].Hash()
		if newConfigHashes[hash] {
			log.WithFields(log.Fields{
				"monitorType": confs[i].Type,
			}).Error("Monitor config is duplicated")
			continue
		}
		newConfigHashes[hash] = true

		if !oldHashes[hash] {
			newConfig = append(newConfig, confs[i])
		}
	}

	var deletedHashes []uint64
	for hash := range oldHashes {
		// If we didn't see it in the latest config slice then we need to
		// delete anything using it.
		if !newConfigHashes[hash] {
			deletedHashes = append(deletedHashes, hash)
		}
	}

	return newConfig, deletedHashes
}

func (mm *MonitorManager) handleNewConfig(conf *config.MonitorConfig, hash uint64) (config.MonitorCustomConfig, error) {
	monConfig, err := getCustomConfigForMonitor(conf)
	if err != nil {
		return nil, err
	}

	core := monConfig.MonitorConfigCore()
	var defaultInterval int
	if md, ok := MonitorMetadatas[core.Type]; ok {
		defaultInterval = md.DefaultIntervalSeconds
	}
	core.IntervalSeconds = utils.FirstNonZero(core.IntervalSeconds, defaultInterval, mm.intervalSeconds)

	key := configKeyFor(monConfig, hash)
	if owner, ok := mm.configKeys[key]; ok && owner != hash {
		return nil, &configKeyCollision{key: key}
	}

	if err := mm.createAndConfigureNewMonitor(monConfig, hash, key); err != nil {
		return nil, err
	}
	mm.configKeys[key] = hash
	return monConfig, nil
}

type configKeyCollision struct {
	key string
}

func (e *configKeyCollision) Error() string {
	return "another monitor is already collecting with config key " + e.key
}

func configKeyFor(monConfig config.MonitorCustomConfig, hash uint64) string {
	if k, ok := monConfig.(KeyedConfig); ok {
		return k.ConfigKey()
	}
	return monConfig.MonitorConfigCore().Type + "/" + strconv.FormatUint(hash, 10)
}

func (mm *MonitorManager) createAndConfigureNewMonitor(monConfig config.MonitorCustomConfig, hash uint64, key string) error {
	coreConfig := monConfig.MonitorConfigCore()

	instance := newMonitor(coreConfig.Type)
	if instance == nil {
		return errUnknownMonitorType
	}

	id := mm.idGenerator(coreConfig.Type)

	output := &monitorOutput{
		monitorType: coreConfig.Type,
		monitorID:   id,
		configHash:  hash,
		dpChan:      mm.DPs,
		eventChan:   mm.Events,
		extraDims:   map[string]string{},
	}

	am := &ActiveMonitor{
		id:         id,
		configHash: hash,
		configKey:  key,
		instance:   instance,
		output:     output,
	}

	if err := am.configureMonitor(monConfig); err != nil {
		am.Shutdown()
		return err
	}

	log.WithFields(log.Fields{
		"monitorType": coreConfig.Type,
		"monitorID":   id,
		"configKey":   key,
	}).Info("Created monitor")

	mm.activeMonitors = append(mm.activeMonitors, am)
	return nil
}

func (mm *MonitorManager) deleteMonitorsByConfigHash(hash uint64) {
	remaining := mm.activeMonitors[:0]
	for _, am := range mm.activeMonitors {
		if am.configHash != hash {
			remaining = append(remaining, am)
			continue
		}

		log.WithFields(log.Fields{
			"monitorType": am.config.MonitorConfigCore().Type,
			"monitorID":   am.id,
		}).Info("Shutting down monitor")

		am.Shutdown()
		delete(mm.configKeys, am.configKey)
	}
	mm.activeMonitors = remaining
}

// Stats returns collection counters for every active monitor, sorted by
// monitor ID.
func (mm *MonitorManager) Stats() []Stats {
	mm.lock.Lock()
	defer mm.lock.Unlock()

	out := make([]Stats, 0, len(mm.activeMonitors))
	for _, am := range mm.activeMonitors {
		out = append(out, am.Stats())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MonitorID < out[j].MonitorID })
	return out
}

// BadConfigs returns the configs that could not be turned into monitors
func (mm *MonitorManager) BadConfigs() []*config.MonitorConfig {
	mm.lock.Lock()
	defer mm.lock.Unlock()

	out := make([]*config.MonitorConfig, 0, len(mm.badConfigs))
	for _, c := range mm.badConfigs {
		out = append(out, c)
	}
	return out
}

// Shutdown will shutdown all managed monitors and deinitialize the manager.
func (mm *MonitorManager) Shutdown() {
	mm.lock.Lock()
	defer mm.lock.Unlock()

	for i := range mm.activeMonitors {
		mm.activeMonitors[i].Shutdown()
	}
	mm.activeMonitors = nil
	mm.monitorConfigs = make(map[uint64]config.MonitorCustomConfig)
	mm.badConfigs = make(map[uint64]*config.MonitorConfig)
	mm.configKeys = make(map[string]uint64)
}
